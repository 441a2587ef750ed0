// Package server provides the HTTP REST API for the talent portal.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-portal/internal/authz"
	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/lifecycle"
	"github.com/jonathan/talent-portal/internal/snapshot"
	"github.com/jonathan/talent-portal/internal/types"
)

// ApplicationStore is the subset of the database used by ApplicationService.
type ApplicationStore interface {
	GetPosting(ctx context.Context, id uuid.UUID) (*db.Posting, error)
	GetResume(ctx context.Context, accountID uuid.UUID) (*db.Resume, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*db.Account, error)
	ListAccounts(ctx context.Context, filters db.AccountFilters) ([]db.Account, error)

	InsertApplication(ctx context.Context, app *db.Application) (*db.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]db.Application, error)
	ListApplicationsForReview(ctx context.Context, filters db.ApplicationFilters) ([]db.Application, error)
	ReviewApplication(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, status types.ApplicationStatus, note string) (*db.Application, error)
	WithdrawApplication(ctx context.Context, id, applicantID uuid.UUID) (*db.Application, error)
}

// ApplicationService drives the application lifecycle: submission with the
// uniqueness reservation, the review state machine, and authorization-scoped
// reviewer reads.
type ApplicationService struct {
	store ApplicationStore
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(store ApplicationStore) *ApplicationService {
	return &ApplicationService{store: store}
}

func convertApplication(a *db.Application) *types.Application {
	if a == nil {
		return nil
	}
	return &types.Application{
		ID:          a.ID,
		ApplicantID: a.ApplicantID,
		PostingID:   a.PostingID,
		Kind:        a.Kind,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		ReviewedAt:  a.ReviewedAt,
		ReviewerID:  a.ReviewerID,
		ReviewNote:  a.ReviewNote,
		Job:         a.Job,
		Project:     a.Project,
	}
}

func convertApplications(apps []db.Application) []types.Application {
	result := make([]types.Application, 0, len(apps))
	for i := range apps {
		result = append(result, *convertApplication(&apps[i]))
	}
	return result
}

// Submit creates a new application in pending state. The posting must be
// published; draft and archived postings are invisible to applicants and
// surface as not found. The insert itself is the uniqueness reservation:
// there is no separate existence check to race against, and a duplicate in
// any status — including withdrawn — rejects the submission.
func (s *ApplicationService) Submit(ctx context.Context, principal types.Principal, postingID uuid.UUID, req *types.SubmitApplicationRequest) (*types.Application, error) {
	posting, err := s.store.GetPosting(ctx, postingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}
	if posting == nil || posting.Status != types.PostingPublished {
		return nil, &ErrNotFound{Resource: "posting", ID: postingID}
	}

	app := &db.Application{
		ApplicantID: principal.ID,
		PostingID:   postingID,
		Kind:        posting.Kind,
	}

	switch posting.Kind {
	case types.PostingJob:
		details, err := s.buildJobDetails(ctx, principal.ID, postingID, req)
		if err != nil {
			return nil, err
		}
		app.Job = details
	case types.PostingProject:
		app.Project = &types.ProjectApplicationDetails{
			PersonalInfo:    sanitizeTextMap(req.PersonalInfo),
			ProjectInfo:     sanitizeTextMap(req.ProjectInfo),
			BusinessPlanURL: req.BusinessPlanURL,
		}
	}

	created, err := s.store.InsertApplication(ctx, app)
	if err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, &ErrDuplicateApplication{PostingID: postingID}
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return convertApplication(created), nil
}

// buildJobDetails assembles the job payload, including the résumé snapshot
// when requested. An incomplete or missing résumé yields no snapshot, not
// an error.
func (s *ApplicationService) buildJobDetails(ctx context.Context, applicantID, postingID uuid.UUID, req *types.SubmitApplicationRequest) (*types.JobApplicationDetails, error) {
	details := &types.JobApplicationDetails{
		CoverLetter:         sanitizeText(req.CoverLetter),
		ExpectedSalary:      req.ExpectedSalary,
		AvailableDate:       req.AvailableDate,
		AdditionalDocuments: req.AdditionalDocuments,
	}

	var stored *types.ResumeContent
	if req.ResumeSnapshot == nil && req.IncludeResume {
		resume, err := s.store.GetResume(ctx, applicantID)
		if err != nil {
			return nil, fmt.Errorf("failed to load resume: %w", err)
		}
		if resume != nil {
			stored = &resume.Content
		}
	}

	if snap := snapshot.Build(stored, req.ResumeSnapshot); snap != nil {
		details.ResumeSnapshot = snap
		details.ResumePreviewRef = fmt.Sprintf("resume-snapshots/%s/%s.json", applicantID, postingID)
	}
	return details, nil
}

// ListOwn returns all of the caller's applications, any status, newest first.
func (s *ApplicationService) ListOwn(ctx context.Context, applicantID uuid.UUID) ([]types.Application, error) {
	apps, err := s.store.ListApplicationsByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return convertApplications(apps), nil
}

// ListForReviewer returns the applications of applicants inside the
// principal's visible range, optionally narrowed by status and kind.
func (s *ApplicationService) ListForReviewer(ctx context.Context, principal types.Principal, filter types.ApplicationFilter) ([]types.Application, error) {
	if !authz.HasReviewAccess(principal) {
		return nil, &ErrForbidden{Reason: "no administrative visibility"}
	}

	filters := db.ApplicationFilters{
		ApplicantRanks: authz.VisibleRanks(principal),
		Status:         filter.Status,
		Kind:           filter.Kind,
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	}
	if authz.ExcludeSelf(principal) {
		filters.ExcludeApplicantID = principal.ID
	}

	apps, err := s.store.ListApplicationsForReview(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for review: %w", err)
	}
	return convertApplications(apps), nil
}

// GetForReviewer retrieves one application inside the principal's visible
// range. Applications of out-of-range applicants surface as not found.
func (s *ApplicationService) GetForReviewer(ctx context.Context, principal types.Principal, id uuid.UUID) (*types.Application, error) {
	app, err := s.visibleApplication(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return convertApplication(app), nil
}

// Review moves a pending application to the reviewer's chosen outcome. The
// store-level status guard decides concurrent races: the loser's update
// matches no row and surfaces as an invalid transition, never a silent
// overwrite.
func (s *ApplicationService) Review(ctx context.Context, principal types.Principal, id uuid.UUID, req *types.ReviewRequest) (*types.Application, error) {
	app, err := s.visibleApplication(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanTransition(app.Status, req.Status, lifecycle.ActorReviewer) {
		return nil, &ErrInvalidTransition{Current: app.Status, Target: req.Status}
	}

	updated, err := s.store.ReviewApplication(ctx, id, principal.ID, req.Status, sanitizeText(req.Note))
	if err != nil {
		return nil, fmt.Errorf("failed to review application: %w", err)
	}
	if updated == nil {
		// Lost a concurrent race after the precondition check.
		current, err := s.store.GetApplication(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reload application: %w", err)
		}
		status := types.ApplicationStatus("")
		if current != nil {
			status = current.Status
		}
		return nil, &ErrInvalidTransition{Current: status, Target: req.Status}
	}
	return convertApplication(updated), nil
}

// Withdraw moves the caller's own pending application to withdrawn.
// Applications owned by someone else surface as not found. Withdrawal does
// not free the (applicant, posting) pair; re-application stays blocked.
func (s *ApplicationService) Withdraw(ctx context.Context, applicantID, id uuid.UUID) (*types.Application, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil || app.ApplicantID != applicantID {
		return nil, &ErrNotFound{Resource: "application", ID: id}
	}

	if !lifecycle.CanTransition(app.Status, types.ApplicationWithdrawn, lifecycle.ActorApplicant) {
		return nil, &ErrInvalidTransition{Current: app.Status, Target: types.ApplicationWithdrawn}
	}

	updated, err := s.store.WithdrawApplication(ctx, id, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw application: %w", err)
	}
	if updated == nil {
		current, err := s.store.GetApplication(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reload application: %w", err)
		}
		status := types.ApplicationStatus("")
		if current != nil {
			status = current.Status
		}
		return nil, &ErrInvalidTransition{Current: status, Target: types.ApplicationWithdrawn}
	}
	return convertApplication(updated), nil
}

// ReviewerDashboard bundles the reviewer's pending queue and visible
// account directory in one response, fetched concurrently.
type ReviewerDashboard struct {
	PendingApplications []types.Application `json:"pending_applications"`
	Accounts            []types.Account     `json:"accounts"`
}

// Dashboard assembles the reviewer landing view.
func (s *ApplicationService) Dashboard(ctx context.Context, principal types.Principal) (*ReviewerDashboard, error) {
	if !authz.HasReviewAccess(principal) {
		return nil, &ErrForbidden{Reason: "no administrative visibility"}
	}

	var dashboard ReviewerDashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		apps, err := s.ListForReviewer(ctx, principal, types.ApplicationFilter{
			Status: types.ApplicationPending,
		})
		if err != nil {
			return err
		}
		dashboard.PendingApplications = apps
		return nil
	})

	g.Go(func() error {
		filters := db.AccountFilters{Ranks: authz.VisibleRanks(principal)}
		if authz.ExcludeSelf(principal) {
			filters.ExcludeID = principal.ID
		}
		accounts, err := s.store.ListAccounts(ctx, filters)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		result := make([]types.Account, 0, len(accounts))
		for i := range accounts {
			result = append(result, *convertAccount(&accounts[i]))
		}
		dashboard.Accounts = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// visibleApplication loads an application and checks its applicant falls
// inside the principal's visible range, masking everything else as not
// found.
func (s *ApplicationService) visibleApplication(ctx context.Context, principal types.Principal, id uuid.UUID) (*db.Application, error) {
	if !authz.HasReviewAccess(principal) {
		return nil, &ErrNotFound{Resource: "application", ID: id}
	}

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Resource: "application", ID: id}
	}

	applicant, err := s.store.GetAccount(ctx, app.ApplicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	if applicant == nil || !authz.AccountVisible(principal, applicant.ID, applicant.Rank) {
		return nil, &ErrNotFound{Resource: "application", ID: id}
	}
	return app, nil
}
