// Package server provides the HTTP REST API for the talent portal.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/types"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrNotFound indicates the requested record is absent — or outside the
// caller's visible range, which is deliberately indistinguishable so that
// lookups cannot probe for the existence of out-of-scope records.
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrForbidden indicates the principal's rank does not authorize the
// requested visibility or action on a record it can see.
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

// ErrDuplicateApplication indicates the applicant already has an
// application for the posting, in any status including withdrawn.
type ErrDuplicateApplication struct {
	PostingID uuid.UUID
}

func (e *ErrDuplicateApplication) Error() string {
	return fmt.Sprintf("already applied to posting %s", e.PostingID)
}

// ErrInvalidTransition indicates a review or withdrawal was attempted from
// a state that does not allow it, including losing a concurrent review race.
type ErrInvalidTransition struct {
	Current types.ApplicationStatus
	Target  types.ApplicationStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.Current, e.Target)
}

// ErrAccountInactive indicates the authenticated principal is not active.
type ErrAccountInactive struct {
	Status types.ActivationStatus
}

func (e *ErrAccountInactive) Error() string {
	return fmt.Sprintf("account is %s", e.Status)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrDuplicateApplication, *ErrInvalidTransition:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrForbidden, *ErrAccountInactive:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
