// Package snapshot assembles immutable résumé snapshots for applications.
package snapshot

import "github.com/jonathan/talent-portal/internal/types"

// Build produces the résumé snapshot to embed in a new application.
//
// A caller-supplied snapshot wins unconditionally: the client asserts "use
// exactly this content now", and it is stored verbatim with no validation
// against the stored résumé. Otherwise the stored résumé is flattened into
// a snapshot, but only when it is complete; a missing or incomplete résumé
// yields nil, which is not an error — the application is simply created
// without résumé content.
func Build(stored *types.ResumeContent, supplied *types.ResumeSnapshot) *types.ResumeSnapshot {
	if supplied != nil {
		snap := *supplied
		fillDefaults(&snap)
		return &snap
	}
	if stored == nil || !stored.IsComplete() {
		return nil
	}
	snap := &types.ResumeSnapshot{
		BasicInfo:    stored.BasicInfo,
		Objective:    stored.Objective,
		Summary:      stored.Summary,
		Education:    append([]types.EducationEntry(nil), stored.Education...),
		Experience:   append([]types.ExperienceEntry(nil), stored.Experience...),
		Projects:     append([]types.ProjectEntry(nil), stored.Projects...),
		Skills:       append([]types.SkillEntry(nil), stored.Skills...),
		Certificates: append([]types.CertificateEntry(nil), stored.Certificates...),
		Languages:    append([]types.LanguageEntry(nil), stored.Languages...),
		Attachments:  append([]types.AttachmentRef(nil), stored.Attachments...),
		Awards:       stored.Awards,
		Hobbies:      stored.Hobbies,
	}
	fillDefaults(snap)
	return snap
}

// fillDefaults replaces nil list sections with empty slices so a stored
// snapshot always round-trips as [] rather than null.
func fillDefaults(s *types.ResumeSnapshot) {
	if s.Education == nil {
		s.Education = []types.EducationEntry{}
	}
	if s.Experience == nil {
		s.Experience = []types.ExperienceEntry{}
	}
	if s.Projects == nil {
		s.Projects = []types.ProjectEntry{}
	}
	if s.Skills == nil {
		s.Skills = []types.SkillEntry{}
	}
	if s.Certificates == nil {
		s.Certificates = []types.CertificateEntry{}
	}
	if s.Languages == nil {
		s.Languages = []types.LanguageEntry{}
	}
	if s.Attachments == nil {
		s.Attachments = []types.AttachmentRef{}
	}
}
