package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-portal/internal/types"
)

const accountColumns = `id, name, email, COALESCE(phone, ''), rank, activation_status, password_hash, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Rank,
		&a.ActivationStatus, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

// CreateAccount inserts a new account and returns its ID. The unique index
// on email surfaces as ErrUniqueViolation.
func (db *DB) CreateAccount(ctx context.Context, name, email, phone, passwordHash string, rank types.Rank, status types.ActivationStatus) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO accounts (name, email, phone, rank, activation_status, password_hash)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		 RETURNING id`,
		name, email, phone, rank, status, passwordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrUniqueViolation
		}
		return uuid.Nil, fmt.Errorf("failed to create account: %w", err)
	}
	return id, nil
}

// GetAccount retrieves an account by ID. Returns nil when absent.
func (db *DB) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	return scanAccount(db.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// GetAccountByEmail retrieves an account by email. Returns nil when absent.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return scanAccount(db.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
}

// ListAccounts retrieves accounts restricted to the given rank set, newest
// first. An empty rank set yields no rows rather than all rows.
func (db *DB) ListAccounts(ctx context.Context, filters AccountFilters) ([]Account, error) {
	if len(filters.Ranks) == 0 {
		return nil, nil
	}
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	ranks := make([]string, len(filters.Ranks))
	for i, r := range filters.Ranks {
		ranks[i] = string(r)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE rank = ANY($1)`
	args := []any{ranks}
	argNum := 2

	if filters.ExcludeID != uuid.Nil {
		query += fmt.Sprintf(" AND id <> $%d", argNum)
		args = append(args, filters.ExcludeID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Rank,
			&a.ActivationStatus, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// UpdateAccount applies a partial mutation to an account.
func (db *DB) UpdateAccount(ctx context.Context, id uuid.UUID, update AccountUpdate) (*Account, error) {
	query := `UPDATE accounts SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if update.Name != nil {
		query += fmt.Sprintf(", name = $%d", argNum)
		args = append(args, *update.Name)
		argNum++
	}
	if update.Phone != nil {
		query += fmt.Sprintf(", phone = NULLIF($%d, '')", argNum)
		args = append(args, *update.Phone)
		argNum++
	}
	if update.Rank != nil {
		query += fmt.Sprintf(", rank = $%d", argNum)
		args = append(args, *update.Rank)
		argNum++
	}
	if update.ActivationStatus != nil {
		query += fmt.Sprintf(", activation_status = $%d", argNum)
		args = append(args, *update.ActivationStatus)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argNum) + accountColumns
	args = append(args, id)

	return scanAccount(db.pool.QueryRow(ctx, query, args...))
}

// DeleteAccount removes an account. The guard on rank repeats the
// authorization rule at the store level so no code path can delete an admin
// account. Returns false when no row was deleted.
func (db *DB) DeleteAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM accounts WHERE id = $1 AND rank NOT IN ('admin', 'super_admin')`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
