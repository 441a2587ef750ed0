// Package server provides the HTTP REST API for the talent portal.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/types"
)

// ResumeStore is the subset of the database used by ResumeService.
type ResumeStore interface {
	GetResume(ctx context.Context, accountID uuid.UUID) (*db.Resume, error)
	EnsureResume(ctx context.Context, accountID uuid.UUID) (*db.Resume, error)
	SaveResume(ctx context.Context, accountID uuid.UUID, content types.ResumeContent) (*db.Resume, error)
}

// ResumeService manages the canonical per-account résumé document.
type ResumeService struct {
	store ResumeStore
}

// NewResumeService creates a new ResumeService.
func NewResumeService(store ResumeStore) *ResumeService {
	return &ResumeService{store: store}
}

// Get returns the account's résumé, creating an empty one on first access.
func (s *ResumeService) Get(ctx context.Context, accountID uuid.UUID) (*db.Resume, error) {
	resume, err := s.store.EnsureResume(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	return resume, nil
}

// Update replaces the account's résumé content. Free-text fields are
// stripped of markup; everything else is stored as supplied. Existing
// application snapshots are unaffected.
func (s *ResumeService) Update(ctx context.Context, accountID uuid.UUID, content types.ResumeContent) (*db.Resume, error) {
	content.Objective = sanitizeText(content.Objective)
	content.Summary = sanitizeText(content.Summary)
	content.Awards = sanitizeText(content.Awards)
	content.Hobbies = sanitizeText(content.Hobbies)
	for i := range content.Experience {
		content.Experience[i].Description = sanitizeText(content.Experience[i].Description)
	}
	for i := range content.Projects {
		content.Projects[i].Description = sanitizeText(content.Projects[i].Description)
	}
	for i := range content.Education {
		content.Education[i].Notes = sanitizeText(content.Education[i].Notes)
	}

	resume, err := s.store.SaveResume(ctx, accountID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return resume, nil
}
