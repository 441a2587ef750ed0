// Package types provides shared type definitions used across the talent portal API.
package types

// BasicInfo holds the identity section of a résumé.
type BasicInfo struct {
	Title            string `json:"title,omitempty"`
	FullName         string `json:"full_name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	MaritalStatus    string `json:"marital_status,omitempty"`
	EmploymentStatus string `json:"employment_status,omitempty"`
}

// EducationEntry is one education record in a résumé.
type EducationEntry struct {
	School    string `json:"school"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ExperienceEntry is one employment record in a résumé.
type ExperienceEntry struct {
	Company     string `json:"company"`
	RoleTitle   string `json:"role_title"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectEntry is one project record in a résumé.
type ProjectEntry struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	URL         string `json:"url,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// SkillEntry is one skill record in a résumé.
type SkillEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
	Years int    `json:"years,omitempty"`
}

// CertificateEntry is one certificate record in a résumé.
type CertificateEntry struct {
	Name     string `json:"name"`
	Issuer   string `json:"issuer,omitempty"`
	IssuedAt string `json:"issued_at,omitempty"`
	URL      string `json:"url,omitempty"`
}

// LanguageEntry is one language record in a résumé.
type LanguageEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// AttachmentRef references an uploaded document in the external object
// store. The URL is opaque to this service.
type AttachmentRef struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// ResumeContent is the full mutable résumé document owned by an applicant.
// The canonical copy lives in the résumé store; applications only ever
// embed immutable snapshots of it.
type ResumeContent struct {
	BasicInfo    BasicInfo          `json:"basic_info"`
	Objective    string             `json:"objective,omitempty"`
	Summary      string             `json:"summary,omitempty"`
	Education    []EducationEntry   `json:"education,omitempty"`
	Experience   []ExperienceEntry  `json:"experience,omitempty"`
	Projects     []ProjectEntry     `json:"projects,omitempty"`
	Skills       []SkillEntry       `json:"skills,omitempty"`
	Certificates []CertificateEntry `json:"certificates,omitempty"`
	Languages    []LanguageEntry    `json:"languages,omitempty"`
	Attachments  []AttachmentRef    `json:"attachments,omitempty"`
	Awards       string             `json:"awards,omitempty"`
	Hobbies      string             `json:"hobbies,omitempty"`
}

// IsComplete reports whether the résumé carries enough content to be
// snapshotted into an application: a title, objective, summary, and at
// least one education and one experience entry.
func (r *ResumeContent) IsComplete() bool {
	return r.BasicInfo.Title != "" &&
		r.Objective != "" &&
		r.Summary != "" &&
		len(r.Education) > 0 &&
		len(r.Experience) > 0
}

// ResumeSnapshot is a fully-materialized copy of résumé content embedded in
// an application at submission time. It has no link back to the live résumé;
// later edits never alter it. List sections are always non-nil.
type ResumeSnapshot struct {
	BasicInfo    BasicInfo          `json:"basic_info"`
	Objective    string             `json:"objective"`
	Summary      string             `json:"summary"`
	Education    []EducationEntry   `json:"education"`
	Experience   []ExperienceEntry  `json:"experience"`
	Projects     []ProjectEntry     `json:"projects"`
	Skills       []SkillEntry       `json:"skills"`
	Certificates []CertificateEntry `json:"certificates"`
	Languages    []LanguageEntry    `json:"languages"`
	Attachments  []AttachmentRef    `json:"attachments"`
	Awards       string             `json:"awards"`
	Hobbies      string             `json:"hobbies"`
}
