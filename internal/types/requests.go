// Package types provides shared type definitions used across the talent portal API.
package types

import (
	"time"

	"github.com/google/uuid"
)

// SubmitApplicationRequest is the request body for applying to a posting.
// Job and project postings share one submit endpoint; the kind-specific
// fields are validated by the application service against the posting's kind.
type SubmitApplicationRequest struct {
	// Job fields.
	CoverLetter    string `json:"cover_letter,omitempty"`
	ExpectedSalary string `json:"expected_salary,omitempty"`
	AvailableDate  string `json:"available_date,omitempty"`
	// IncludeResume asks for a snapshot of the stored résumé. Ignored when
	// ResumeSnapshot is supplied directly.
	IncludeResume bool `json:"include_resume,omitempty"`
	// ResumeSnapshot, when present, is used verbatim as the application's
	// résumé content. The client asserts "use exactly this", so it is not
	// validated against the stored résumé.
	ResumeSnapshot      *ResumeSnapshot `json:"resume_snapshot,omitempty"`
	AdditionalDocuments []AttachmentRef `json:"additional_documents,omitempty"`

	// Project fields.
	PersonalInfo    map[string]string `json:"personal_info,omitempty"`
	ProjectInfo     map[string]string `json:"project_info,omitempty"`
	BusinessPlanURL string            `json:"business_plan_url,omitempty"`
}

// ReviewRequest is a reviewer's decision on a pending application.
type ReviewRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=approved rejected returned"`
	Note   string            `json:"note,omitempty" validate:"max=4000"`
}

// ApplicationFilter narrows reviewer-facing application listings. The
// visibility scope itself comes from the authorization resolver; the filter
// only narrows within it.
type ApplicationFilter struct {
	Status ApplicationStatus
	Kind   PostingKind
	Limit  int
	Offset int
}

// AccountFilter narrows reviewer-facing account listings. A requested rank
// outside the principal's visible range is rejected, not silently clipped.
type AccountFilter struct {
	Rank   Rank
	Limit  int
	Offset int
}

// UpdateAccountRequest carries an administrative edit of another account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name             *string           `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone            *string           `json:"phone,omitempty"`
	Rank             *Rank             `json:"rank,omitempty"`
	ActivationStatus *ActivationStatus `json:"activation_status,omitempty"`
}

// CreatePostingRequest creates a job or project posting in draft state.
type CreatePostingRequest struct {
	Kind        PostingKind `json:"kind" validate:"required,oneof=job project"`
	Title       string      `json:"title" validate:"required,min=1"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
}

// UpdatePostingRequest mutates a posting's content or publication status.
type UpdatePostingRequest struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string        `json:"description,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Status      *PostingStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// Application is the API view of an application record.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	ApplicantID uuid.UUID         `json:"applicant_id"`
	PostingID   uuid.UUID         `json:"posting_id"`
	Kind        PostingKind       `json:"kind"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
	ReviewerID  *uuid.UUID        `json:"reviewer_id,omitempty"`
	ReviewNote  string            `json:"review_note,omitempty"`

	Job     *JobApplicationDetails     `json:"job,omitempty"`
	Project *ProjectApplicationDetails `json:"project,omitempty"`
}

// JobApplicationDetails is the kind-specific payload of a job application.
type JobApplicationDetails struct {
	CoverLetter         string          `json:"cover_letter,omitempty"`
	ExpectedSalary      string          `json:"expected_salary,omitempty"`
	AvailableDate       string          `json:"available_date,omitempty"`
	ResumeSnapshot      *ResumeSnapshot `json:"resume_snapshot,omitempty"`
	ResumePreviewRef    string          `json:"resume_preview_ref,omitempty"`
	AdditionalDocuments []AttachmentRef `json:"additional_documents,omitempty"`
}

// ProjectApplicationDetails is the kind-specific payload of a project
// application.
type ProjectApplicationDetails struct {
	PersonalInfo    map[string]string `json:"personal_info,omitempty"`
	ProjectInfo     map[string]string `json:"project_info,omitempty"`
	BusinessPlanURL string            `json:"business_plan_url,omitempty"`
}
