package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-portal/internal/types"
)

// Posting is a job or project posting row.
type Posting struct {
	ID          uuid.UUID           `json:"id"`
	Kind        types.PostingKind   `json:"kind"`
	Status      types.PostingStatus `json:"status"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Location    string              `json:"location,omitempty"`
	CreatedBy   uuid.UUID           `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

const postingColumns = `id, kind, status, title, COALESCE(description, ''), COALESCE(location, ''), created_by, created_at, updated_at`

func scanPosting(row pgx.Row) (*Posting, error) {
	var p Posting
	err := row.Scan(&p.ID, &p.Kind, &p.Status, &p.Title, &p.Description,
		&p.Location, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan posting: %w", err)
	}
	return &p, nil
}

// CreatePosting inserts a new posting in draft state and returns its ID.
func (db *DB) CreatePosting(ctx context.Context, kind types.PostingKind, title, description, location string, createdBy uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO postings (kind, status, title, description, location, created_by)
		 VALUES ($1, 'draft', $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		 RETURNING id`,
		kind, title, description, location, createdBy,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create posting: %w", err)
	}
	return id, nil
}

// GetPosting retrieves a posting by ID. Returns nil when absent.
func (db *DB) GetPosting(ctx context.Context, id uuid.UUID) (*Posting, error) {
	return scanPosting(db.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM postings WHERE id = $1`, id))
}

// ListPublishedPostings retrieves published postings, newest first,
// optionally restricted to one kind.
func (db *DB) ListPublishedPostings(ctx context.Context, kind types.PostingKind, limit, offset int) ([]Posting, error) {
	if limit == 0 {
		limit = 50
	}

	query := `SELECT ` + postingColumns + ` FROM postings WHERE status = 'published'`
	args := []any{}
	argNum := 1

	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argNum)
		args = append(args, kind)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	var postings []Posting
	for rows.Next() {
		var p Posting
		if err := rows.Scan(&p.ID, &p.Kind, &p.Status, &p.Title, &p.Description,
			&p.Location, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// PostingUpdate carries a partial posting mutation. Nil fields are left
// unchanged.
type PostingUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Status      *types.PostingStatus
}

// UpdatePosting applies a partial mutation to a posting.
func (db *DB) UpdatePosting(ctx context.Context, id uuid.UUID, update PostingUpdate) (*Posting, error) {
	query := `UPDATE postings SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if update.Title != nil {
		query += fmt.Sprintf(", title = $%d", argNum)
		args = append(args, *update.Title)
		argNum++
	}
	if update.Description != nil {
		query += fmt.Sprintf(", description = NULLIF($%d, '')", argNum)
		args = append(args, *update.Description)
		argNum++
	}
	if update.Location != nil {
		query += fmt.Sprintf(", location = NULLIF($%d, '')", argNum)
		args = append(args, *update.Location)
		argNum++
	}
	if update.Status != nil {
		query += fmt.Sprintf(", status = $%d", argNum)
		args = append(args, *update.Status)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argNum) + postingColumns
	args = append(args, id)

	return scanPosting(db.pool.QueryRow(ctx, query, args...))
}
