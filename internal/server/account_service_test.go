package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-portal/internal/config"
	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/types"
)

func testPasswordConfig() *config.PasswordConfig {
	// Minimum allowed cost keeps the bcrypt tests fast.
	return &config.PasswordConfig{BcryptCost: 10}
}

func principalFor(a db.Account) types.Principal {
	return types.Principal{
		ID:               a.ID,
		Rank:             a.Rank,
		ActivationStatus: a.ActivationStatus,
	}
}

func TestAccountService_Register(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	req := &types.RegisterRequest{
		Name:     "Dana Smith",
		Email:    "dana@example.com",
		Password: "correct-horse",
	}

	account, err := service.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", account.Email)
	assert.Equal(t, types.RankUser, account.Rank)
	assert.Equal(t, types.ActivationActive, account.ActivationStatus)
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	req := &types.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "pw12345678"}
	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	var dupErr *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dana@example.com", dupErr.Email)
}

func TestAccountService_Login(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, &types.RegisterRequest{
		Name: "Dana", Email: "dana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		account, err := service.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", account.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "wrong"})
		var credErr *ErrInvalidCredentials
		assert.ErrorAs(t, err, &credErr)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := service.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		var credErr *ErrInvalidCredentials
		assert.ErrorAs(t, err, &credErr)
	})

	t.Run("suspended account", func(t *testing.T) {
		account, err := store.GetAccountByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		suspended := types.ActivationSuspended
		_, err = store.UpdateAccount(ctx, account.ID, db.AccountUpdate{ActivationStatus: &suspended})
		require.NoError(t, err)

		_, err = service.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
		var inactiveErr *ErrAccountInactive
		require.ErrorAs(t, err, &inactiveErr)
		assert.Equal(t, types.ActivationSuspended, inactiveErr.Status)
	})
}

func TestAccountService_ListForReviewer(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	super := store.addAccount(types.RankSuperAdmin)
	otherSuper := store.addAccount(types.RankSuperAdmin)
	admin := store.addAccount(types.RankAdmin)
	vip := store.addAccount(types.RankVIP)
	user := store.addAccount(types.RankUser)

	t.Run("super_admin sees everyone but self", func(t *testing.T) {
		accounts, err := service.ListForReviewer(ctx, principalFor(super), types.AccountFilter{})
		require.NoError(t, err)

		ids := make([]uuid.UUID, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{otherSuper.ID, admin.ID, vip.ID, user.ID}, ids)
		assert.NotContains(t, ids, super.ID)
	})

	t.Run("admin never sees admin or super_admin accounts", func(t *testing.T) {
		accounts, err := service.ListForReviewer(ctx, principalFor(admin), types.AccountFilter{})
		require.NoError(t, err)

		ids := make([]uuid.UUID, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{vip.ID, user.ID}, ids)
	})

	t.Run("rank filter inside range narrows", func(t *testing.T) {
		accounts, err := service.ListForReviewer(ctx, principalFor(admin), types.AccountFilter{Rank: types.RankVIP})
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, vip.ID, accounts[0].ID)
	})

	t.Run("rank filter outside range is forbidden, not widened", func(t *testing.T) {
		_, err := service.ListForReviewer(ctx, principalFor(admin), types.AccountFilter{Rank: types.RankAdmin})
		var forbiddenErr *ErrForbidden
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("user has no directory at all", func(t *testing.T) {
		_, err := service.ListForReviewer(ctx, principalFor(user), types.AccountFilter{})
		var forbiddenErr *ErrForbidden
		assert.ErrorAs(t, err, &forbiddenErr)
	})
}

func TestAccountService_GetForReviewer(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	super := store.addAccount(types.RankSuperAdmin)
	admin := store.addAccount(types.RankAdmin)
	otherAdmin := store.addAccount(types.RankAdmin)
	user := store.addAccount(types.RankUser)

	t.Run("visible account is returned", func(t *testing.T) {
		account, err := service.GetForReviewer(ctx, principalFor(admin), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, account.ID)
	})

	t.Run("out of range account masks as not found", func(t *testing.T) {
		_, err := service.GetForReviewer(ctx, principalFor(admin), otherAdmin.ID)
		var notFoundErr *ErrNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("super_admin own account masks as not found", func(t *testing.T) {
		_, err := service.GetForReviewer(ctx, principalFor(super), super.ID)
		var notFoundErr *ErrNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("non staff principal masks as not found", func(t *testing.T) {
		_, err := service.GetForReviewer(ctx, principalFor(user), admin.ID)
		var notFoundErr *ErrNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestAccountService_Update(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	super := store.addAccount(types.RankSuperAdmin)
	admin := store.addAccount(types.RankAdmin)
	user := store.addAccount(types.RankUser)

	t.Run("admin edits a user", func(t *testing.T) {
		name := "Renamed"
		updated, err := service.Update(ctx, principalFor(admin), user.ID, &types.UpdateAccountRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("promotion below own rank succeeds", func(t *testing.T) {
		vipRank := types.RankVIP
		updated, err := service.Update(ctx, principalFor(super), user.ID, &types.UpdateAccountRequest{Rank: &vipRank})
		require.NoError(t, err)
		assert.Equal(t, types.RankVIP, updated.Rank)
	})

	t.Run("granting own rank or above is forbidden", func(t *testing.T) {
		adminRank := types.RankAdmin
		_, err := service.Update(ctx, principalFor(admin), user.ID, &types.UpdateAccountRequest{Rank: &adminRank})
		var forbiddenErr *ErrForbidden
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("admin cannot edit a peer admin", func(t *testing.T) {
		name := "Renamed"
		otherAdmin := store.addAccount(types.RankAdmin)
		_, err := service.Update(ctx, principalFor(admin), otherAdmin.ID, &types.UpdateAccountRequest{Name: &name})
		var notFoundErr *ErrNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestAccountService_Suspend(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	super := store.addAccount(types.RankSuperAdmin)
	admin := store.addAccount(types.RankAdmin)
	user := store.addAccount(types.RankUser)

	t.Run("admin suspends a user", func(t *testing.T) {
		updated, err := service.Suspend(ctx, principalFor(admin), user.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ActivationSuspended, updated.ActivationStatus)
	})

	t.Run("super_admin suspends an admin", func(t *testing.T) {
		updated, err := service.Suspend(ctx, principalFor(super), admin.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ActivationSuspended, updated.ActivationStatus)
	})
}

func TestAccountService_Delete(t *testing.T) {
	store := newFakeStore()
	service := NewAccountService(store, testPasswordConfig())
	ctx := context.Background()

	super := store.addAccount(types.RankSuperAdmin)
	admin := store.addAccount(types.RankAdmin)
	otherAdmin := store.addAccount(types.RankAdmin)
	vip := store.addAccount(types.RankVIP)
	user := store.addAccount(types.RankUser)

	t.Run("admin deletes a user", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, principalFor(admin), user.ID))
		gone, err := store.GetAccount(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("super_admin deletes a vip", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, principalFor(super), vip.ID))
	})

	t.Run("super_admin cannot delete an admin", func(t *testing.T) {
		err := service.Delete(ctx, principalFor(super), admin.ID)
		var forbiddenErr *ErrForbidden
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("admin cannot delete a peer admin", func(t *testing.T) {
		// The protection is explicit for staff even though the peer admin
		// falls outside the visible range.
		err := service.Delete(ctx, principalFor(admin), otherAdmin.ID)
		var forbiddenErr *ErrForbidden
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("non staff deleter masks as not found", func(t *testing.T) {
		stranger := store.addAccount(types.RankUser)
		err := service.Delete(ctx, principalFor(stranger), admin.ID)
		var notFoundErr *ErrNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("missing account is not found", func(t *testing.T) {
		err := service.Delete(ctx, principalFor(super), uuid.New())
		var notFoundErr *ErrNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})
}
