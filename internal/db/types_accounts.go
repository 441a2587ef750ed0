package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/types"
)

// Account represents an account row. The password hash stays inside this
// package and is never serialized.
type Account struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone,omitempty"`
	Rank             types.Rank             `json:"rank"`
	ActivationStatus types.ActivationStatus `json:"activation_status"`
	PasswordHash     string                 `json:"-"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// AccountFilters holds optional filters for listing accounts. Ranks is the
// caller's already-authorized visible range; the query never widens it.
type AccountFilters struct {
	Ranks     []types.Rank
	ExcludeID uuid.UUID
	Limit     int
	Offset    int
}

// AccountUpdate carries a partial account mutation. Nil fields are left
// unchanged.
type AccountUpdate struct {
	Name             *string
	Phone            *string
	Rank             *types.Rank
	ActivationStatus *types.ActivationStatus
}
