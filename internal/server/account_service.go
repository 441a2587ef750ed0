// Package server provides the HTTP REST API for the talent portal.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/authz"
	"github.com/jonathan/talent-portal/internal/config"
	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/types"
)

// AccountStore is the subset of the database used by AccountService.
type AccountStore interface {
	CreateAccount(ctx context.Context, name, email, phone, passwordHash string, rank types.Rank, status types.ActivationStatus) (uuid.UUID, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*db.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*db.Account, error)
	ListAccounts(ctx context.Context, filters db.AccountFilters) ([]db.Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, update db.AccountUpdate) (*db.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) (bool, error)
}

// AccountService provides business logic for registration, login and the
// rank-scoped account directory.
type AccountService struct {
	store          AccountStore
	passwordConfig *config.PasswordConfig
}

// NewAccountService creates a new AccountService with the given dependencies.
func NewAccountService(store AccountStore, passwordConfig *config.PasswordConfig) *AccountService {
	return &AccountService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// convertAccount converts db.Account to types.Account, excluding the
// password hash.
func convertAccount(a *db.Account) *types.Account {
	if a == nil {
		return nil
	}
	return &types.Account{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		Phone:            a.Phone,
		Rank:             a.Rank,
		ActivationStatus: a.ActivationStatus,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// Register creates a new applicant account at rank user. Staff ranks are
// only ever granted through Update by a sufficiently ranked principal.
func (s *AccountService) Register(ctx context.Context, req *types.RegisterRequest) (*types.Account, error) {
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique index on email is the only duplicate check; a pre-read
	// would race with concurrent registrations.
	id, err := s.store.CreateAccount(ctx, req.Name, req.Email, req.Phone,
		passwordHash, types.RankUser, types.ActivationActive)
	if err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("created account not found: %s", id)
	}

	return convertAccount(account), nil
}

// Login authenticates an account and returns its data.
func (s *AccountService) Login(ctx context.Context, req *types.LoginRequest) (*types.Account, error) {
	account, err := s.store.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	// Security: Always return generic error if account not found or password wrong
	if account == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	if account.ActivationStatus != types.ActivationActive {
		return nil, &ErrAccountInactive{Status: account.ActivationStatus}
	}

	return convertAccount(account), nil
}

// ListForReviewer returns the accounts inside the principal's visible
// range. A requested rank filter outside that range is rejected with a
// forbidden error, never silently widened or narrowed.
func (s *AccountService) ListForReviewer(ctx context.Context, principal types.Principal, filter types.AccountFilter) ([]types.Account, error) {
	if !authz.HasReviewAccess(principal) {
		return nil, &ErrForbidden{Reason: "no administrative visibility"}
	}

	ranks := authz.VisibleRanks(principal)
	if filter.Rank != "" {
		if !authz.RankVisible(principal, filter.Rank) {
			return nil, &ErrForbidden{Reason: fmt.Sprintf("rank %s is outside the visible range", filter.Rank)}
		}
		ranks = []types.Rank{filter.Rank}
	}

	filters := db.AccountFilters{
		Ranks:  ranks,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	if authz.ExcludeSelf(principal) {
		filters.ExcludeID = principal.ID
	}

	accounts, err := s.store.ListAccounts(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := make([]types.Account, 0, len(accounts))
	for i := range accounts {
		result = append(result, *convertAccount(&accounts[i]))
	}
	return result, nil
}

// GetForReviewer retrieves one account inside the principal's visible
// range. Out-of-range accounts surface as not found so that lookups cannot
// probe for their existence.
func (s *AccountService) GetForReviewer(ctx context.Context, principal types.Principal, id uuid.UUID) (*types.Account, error) {
	if !authz.HasReviewAccess(principal) {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}

	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || !authz.AccountVisible(principal, account.ID, account.Rank) {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}
	return convertAccount(account), nil
}

// Update applies an administrative edit to another account.
func (s *AccountService) Update(ctx context.Context, principal types.Principal, id uuid.UUID, req *types.UpdateAccountRequest) (*types.Account, error) {
	account, err := s.authorize(ctx, principal, id, types.ActionEdit)
	if err != nil {
		return nil, err
	}

	update := db.AccountUpdate{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Rank != nil {
		if !req.Rank.Valid() {
			return nil, &ErrValidation{Field: "rank", Message: "unknown rank"}
		}
		// A principal may only grant ranks strictly below its own.
		if !principal.Rank.Outranks(*req.Rank) {
			return nil, &ErrForbidden{Reason: fmt.Sprintf("cannot grant rank %s", *req.Rank)}
		}
		update.Rank = req.Rank
	}
	if req.ActivationStatus != nil {
		if !req.ActivationStatus.Valid() {
			return nil, &ErrValidation{Field: "activation_status", Message: "unknown activation status"}
		}
		update.ActivationStatus = req.ActivationStatus
	}

	updated, err := s.store.UpdateAccount(ctx, account.ID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if updated == nil {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}
	return convertAccount(updated), nil
}

// Suspend sets another account's activation status to suspended.
func (s *AccountService) Suspend(ctx context.Context, principal types.Principal, id uuid.UUID) (*types.Account, error) {
	account, err := s.authorize(ctx, principal, id, types.ActionSuspend)
	if err != nil {
		return nil, err
	}

	suspended := types.ActivationSuspended
	updated, err := s.store.UpdateAccount(ctx, account.ID, db.AccountUpdate{ActivationStatus: &suspended})
	if err != nil {
		return nil, fmt.Errorf("failed to suspend account: %w", err)
	}
	if updated == nil {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}
	return convertAccount(updated), nil
}

// Delete removes another account. Admin accounts are undeletable by anyone,
// including super_admins and their own creator.
func (s *AccountService) Delete(ctx context.Context, principal types.Principal, id uuid.UUID) error {
	if _, err := s.authorize(ctx, principal, id, types.ActionDelete); err != nil {
		return err
	}

	deleted, err := s.store.DeleteAccount(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if !deleted {
		return &ErrNotFound{Resource: "account", ID: id}
	}
	return nil
}

// authorize loads the target account and checks the principal may perform
// the action on it. Principals with no review access, and targets outside
// the visible range, both surface as not found; a visible-but-protected
// target surfaces as forbidden. The delete protection for admin accounts
// is checked before the visibility mask so that staff get the explicit
// refusal rather than a misleading not-found.
func (s *AccountService) authorize(ctx context.Context, principal types.Principal, id uuid.UUID, action types.AccountAction) (*db.Account, error) {
	if !authz.HasReviewAccess(principal) {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}

	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}

	if action == types.ActionDelete &&
		(account.Rank == types.RankAdmin || account.Rank == types.RankSuperAdmin) {
		return nil, &ErrForbidden{Reason: "admin accounts cannot be deleted"}
	}

	if !authz.AccountVisible(principal, account.ID, account.Rank) {
		return nil, &ErrNotFound{Resource: "account", ID: id}
	}
	if !authz.CanAct(principal, account.Rank, action) {
		return nil, &ErrForbidden{Reason: fmt.Sprintf("%s not permitted on rank %s", action, account.Rank)}
	}
	return account, nil
}
