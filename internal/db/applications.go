package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-portal/internal/types"
)

// Application is an application row. The kind-specific payload, including
// the inline résumé snapshot for job applications, lives in one JSONB
// column so the snapshot stays intact even if the source résumé row is
// later changed or deleted.
type Application struct {
	ID          uuid.UUID               `json:"id"`
	ApplicantID uuid.UUID               `json:"applicant_id"`
	PostingID   uuid.UUID               `json:"posting_id"`
	Kind        types.PostingKind       `json:"kind"`
	Status      types.ApplicationStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	ReviewedAt  *time.Time              `json:"reviewed_at,omitempty"`
	ReviewerID  *uuid.UUID              `json:"reviewer_id,omitempty"`
	ReviewNote  string                  `json:"review_note,omitempty"`

	Job     *types.JobApplicationDetails     `json:"job,omitempty"`
	Project *types.ProjectApplicationDetails `json:"project,omitempty"`
}

const applicationColumns = `id, applicant_id, posting_id, kind, status, created_at, reviewed_at, reviewer_id, COALESCE(review_note, ''), details`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	var details []byte
	err := row.Scan(&a.ID, &a.ApplicantID, &a.PostingID, &a.Kind, &a.Status,
		&a.CreatedAt, &a.ReviewedAt, &a.ReviewerID, &a.ReviewNote, &details)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	if err := a.decodeDetails(details); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Application) decodeDetails(details []byte) error {
	if len(details) == 0 {
		return nil
	}
	switch a.Kind {
	case types.PostingJob:
		a.Job = &types.JobApplicationDetails{}
		if err := json.Unmarshal(details, a.Job); err != nil {
			return fmt.Errorf("failed to decode job application details: %w", err)
		}
	case types.PostingProject:
		a.Project = &types.ProjectApplicationDetails{}
		if err := json.Unmarshal(details, a.Project); err != nil {
			return fmt.Errorf("failed to decode project application details: %w", err)
		}
	}
	return nil
}

func (a *Application) encodeDetails() ([]byte, error) {
	var payload any
	switch a.Kind {
	case types.PostingJob:
		payload = a.Job
	case types.PostingProject:
		payload = a.Project
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application details: %w", err)
	}
	return encoded, nil
}

// InsertApplication creates a new application in pending state. The unique
// index on (applicant_id, posting_id) is the uniqueness reservation: the
// insert either claims the pair or fails with ErrUniqueViolation, with no
// window for two concurrent submits to both pass an existence check. A row
// that already exists in any status, including withdrawn, blocks the insert.
func (db *DB) InsertApplication(ctx context.Context, app *Application) (*Application, error) {
	details, err := app.encodeDetails()
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO applications (applicant_id, posting_id, kind, status, details)
		 VALUES ($1, $2, $3, 'pending', $4)
		 RETURNING `+applicationColumns,
		app.ApplicantID, app.PostingID, app.Kind, details,
	)
	created, err := scanApplication(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUniqueViolation
		}
		return nil, err
	}
	return created, nil
}

// GetApplication retrieves an application by ID. Returns nil when absent.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	return scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

// ListApplicationsByApplicant retrieves all of one applicant's
// applications, any status, newest first.
func (db *DB) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE applicant_id = $1 ORDER BY created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ApplicationFilters holds the reviewer-facing listing constraints.
// ApplicantRanks is the authorized visible range; an empty set yields no
// rows.
type ApplicationFilters struct {
	ApplicantRanks     []types.Rank
	ExcludeApplicantID uuid.UUID
	Status             types.ApplicationStatus
	Kind               types.PostingKind
	Limit              int
	Offset             int
}

// ListApplicationsForReview retrieves applications whose applicants fall
// inside the given rank range, newest first.
func (db *DB) ListApplicationsForReview(ctx context.Context, filters ApplicationFilters) ([]Application, error) {
	if len(filters.ApplicantRanks) == 0 {
		return nil, nil
	}
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	ranks := make([]string, len(filters.ApplicantRanks))
	for i, r := range filters.ApplicantRanks {
		ranks[i] = string(r)
	}

	query := `SELECT a.id, a.applicant_id, a.posting_id, a.kind, a.status, a.created_at,
		a.reviewed_at, a.reviewer_id, COALESCE(a.review_note, ''), a.details
		FROM applications a
		JOIN accounts u ON u.id = a.applicant_id
		WHERE u.rank = ANY($1)`
	args := []any{ranks}
	argNum := 2

	if filters.ExcludeApplicantID != uuid.Nil {
		query += fmt.Sprintf(" AND a.applicant_id <> $%d", argNum)
		args = append(args, filters.ExcludeApplicantID)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND a.status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Kind != "" {
		query += fmt.Sprintf(" AND a.kind = $%d", argNum)
		args = append(args, filters.Kind)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for review: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]Application, error) {
	var apps []Application
	for rows.Next() {
		var a Application
		var details []byte
		if err := rows.Scan(&a.ID, &a.ApplicantID, &a.PostingID, &a.Kind, &a.Status,
			&a.CreatedAt, &a.ReviewedAt, &a.ReviewerID, &a.ReviewNote, &details); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if err := a.decodeDetails(details); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// ReviewApplication moves a pending application to the given outcome and
// stamps the reviewer, in one conditional update. The status guard makes
// concurrent reviews race-safe: the second update matches zero rows and
// returns nil, never overwriting the winner's outcome.
func (db *DB) ReviewApplication(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, status types.ApplicationStatus, note string) (*Application, error) {
	return scanApplication(db.pool.QueryRow(ctx,
		`UPDATE applications
		 SET status = $1, reviewed_at = NOW(), reviewer_id = $2, review_note = NULLIF($3, '')
		 WHERE id = $4 AND status = 'pending'
		 RETURNING `+applicationColumns,
		status, reviewerID, note, id,
	))
}

// WithdrawApplication moves a pending application to withdrawn, guarded the
// same way as ReviewApplication and additionally on ownership. Returns nil
// when the row is absent, not pending, or owned by someone else.
func (db *DB) WithdrawApplication(ctx context.Context, id, applicantID uuid.UUID) (*Application, error) {
	return scanApplication(db.pool.QueryRow(ctx,
		`UPDATE applications
		 SET status = 'withdrawn'
		 WHERE id = $1 AND applicant_id = $2 AND status = 'pending'
		 RETURNING `+applicationColumns,
		id, applicantID,
	))
}
