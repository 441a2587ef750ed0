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

// Resume is a résumé row. The document content is stored as one JSONB
// column; the row exists lazily, created on first access.
type Resume struct {
	ID        uuid.UUID           `json:"id"`
	AccountID uuid.UUID           `json:"account_id"`
	Content   types.ResumeContent `json:"content"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// GetResume retrieves an account's résumé. Returns nil when the account has
// never touched its résumé.
func (db *DB) GetResume(ctx context.Context, accountID uuid.UUID) (*Resume, error) {
	var r Resume
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, account_id, content, created_at, updated_at
		 FROM resumes WHERE account_id = $1`,
		accountID,
	).Scan(&r.ID, &r.AccountID, &content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if err := json.Unmarshal(content, &r.Content); err != nil {
		return nil, fmt.Errorf("failed to decode resume content: %w", err)
	}
	return &r, nil
}

// EnsureResume returns the account's résumé, creating an empty one when it
// does not exist yet. The upsert keeps concurrent first accesses from
// racing into duplicate rows.
func (db *DB) EnsureResume(ctx context.Context, accountID uuid.UUID) (*Resume, error) {
	empty, err := json.Marshal(types.ResumeContent{})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal empty resume: %w", err)
	}

	var r Resume
	var content []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (account_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (account_id) DO UPDATE SET account_id = EXCLUDED.account_id
		 RETURNING id, account_id, content, created_at, updated_at`,
		accountID, empty,
	).Scan(&r.ID, &r.AccountID, &content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure resume: %w", err)
	}
	if err := json.Unmarshal(content, &r.Content); err != nil {
		return nil, fmt.Errorf("failed to decode resume content: %w", err)
	}
	return &r, nil
}

// SaveResume replaces an account's résumé content.
func (db *DB) SaveResume(ctx context.Context, accountID uuid.UUID, content types.ResumeContent) (*Resume, error) {
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume content: %w", err)
	}

	var r Resume
	var raw []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (account_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (account_id) DO UPDATE SET content = $2, updated_at = NOW()
		 RETURNING id, account_id, content, created_at, updated_at`,
		accountID, encoded,
	).Scan(&r.ID, &r.AccountID, &raw, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	if err := json.Unmarshal(raw, &r.Content); err != nil {
		return nil, fmt.Errorf("failed to decode resume content: %w", err)
	}
	return &r, nil
}
