package server

import "github.com/microcosm-cc/bluemonday"

// freeTextPolicy strips all markup from applicant-supplied free text before
// it is stored. Structure is never validated here; snapshots remain a
// verbatim copy of what the applicant submitted, minus markup.
var freeTextPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return freeTextPolicy.Sanitize(s)
}

func sanitizeTextMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = sanitizeText(v)
	}
	return out
}
