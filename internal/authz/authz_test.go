package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-portal/internal/types"
)

func principalWithRank(rank types.Rank) types.Principal {
	return types.Principal{
		ID:               uuid.New(),
		Rank:             rank,
		ActivationStatus: types.ActivationActive,
	}
}

func TestVisibleRanks(t *testing.T) {
	tests := []struct {
		name     string
		rank     types.Rank
		expected []types.Rank
	}{
		{
			name:     "super_admin sees every rank",
			rank:     types.RankSuperAdmin,
			expected: []types.Rank{types.RankSuperAdmin, types.RankAdmin, types.RankVIP, types.RankUser},
		},
		{
			name:     "admin sees only vip and user",
			rank:     types.RankAdmin,
			expected: []types.Rank{types.RankVIP, types.RankUser},
		},
		{
			name:     "vip sees nothing",
			rank:     types.RankVIP,
			expected: nil,
		},
		{
			name:     "user sees nothing",
			rank:     types.RankUser,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VisibleRanks(principalWithRank(tt.rank)))
		})
	}
}

func TestExcludeSelf(t *testing.T) {
	assert.True(t, ExcludeSelf(principalWithRank(types.RankSuperAdmin)))
	assert.False(t, ExcludeSelf(principalWithRank(types.RankAdmin)))
	assert.False(t, ExcludeSelf(principalWithRank(types.RankVIP)))
	assert.False(t, ExcludeSelf(principalWithRank(types.RankUser)))
}

func TestRankVisible(t *testing.T) {
	tests := []struct {
		name      string
		principal types.Rank
		target    types.Rank
		visible   bool
	}{
		{"super_admin sees super_admin rank", types.RankSuperAdmin, types.RankSuperAdmin, true},
		{"super_admin sees admin", types.RankSuperAdmin, types.RankAdmin, true},
		{"super_admin sees vip", types.RankSuperAdmin, types.RankVIP, true},
		{"super_admin sees user", types.RankSuperAdmin, types.RankUser, true},
		{"admin cannot see super_admin", types.RankAdmin, types.RankSuperAdmin, false},
		{"admin cannot see admin", types.RankAdmin, types.RankAdmin, false},
		{"admin sees vip", types.RankAdmin, types.RankVIP, true},
		{"admin sees user", types.RankAdmin, types.RankUser, true},
		{"vip sees nobody", types.RankVIP, types.RankUser, false},
		{"user sees nobody", types.RankUser, types.RankUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, RankVisible(principalWithRank(tt.principal), tt.target))
		})
	}
}

func TestAccountVisible(t *testing.T) {
	t.Run("super_admin does not see own account", func(t *testing.T) {
		p := principalWithRank(types.RankSuperAdmin)
		assert.False(t, AccountVisible(p, p.ID, types.RankSuperAdmin))
	})

	t.Run("super_admin sees other super_admins", func(t *testing.T) {
		p := principalWithRank(types.RankSuperAdmin)
		assert.True(t, AccountVisible(p, uuid.New(), types.RankSuperAdmin))
	})

	t.Run("admin does not see peer admins", func(t *testing.T) {
		p := principalWithRank(types.RankAdmin)
		assert.False(t, AccountVisible(p, uuid.New(), types.RankAdmin))
	})

	t.Run("admin sees user accounts", func(t *testing.T) {
		p := principalWithRank(types.RankAdmin)
		assert.True(t, AccountVisible(p, uuid.New(), types.RankUser))
	})
}

// TestCanAct enumerates the full principal rank x target rank x action grid.
// The asymmetry under test: super_admins can edit and suspend admins but can
// never delete one.
func TestCanAct(t *testing.T) {
	allRanks := []types.Rank{types.RankSuperAdmin, types.RankAdmin, types.RankVIP, types.RankUser}
	allActions := []types.AccountAction{types.ActionEdit, types.ActionSuspend, types.ActionDelete}

	allowed := map[[3]string]bool{
		{"super_admin", "admin", "edit"}:    true,
		{"super_admin", "admin", "suspend"}: true,
		{"super_admin", "vip", "edit"}:      true,
		{"super_admin", "vip", "suspend"}:   true,
		{"super_admin", "vip", "delete"}:    true,
		{"super_admin", "user", "edit"}:     true,
		{"super_admin", "user", "suspend"}:  true,
		{"super_admin", "user", "delete"}:   true,
		{"admin", "vip", "edit"}:            true,
		{"admin", "vip", "suspend"}:         true,
		{"admin", "vip", "delete"}:          true,
		{"admin", "user", "edit"}:           true,
		{"admin", "user", "suspend"}:        true,
		{"admin", "user", "delete"}:         true,
	}

	for _, principal := range allRanks {
		for _, target := range allRanks {
			for _, action := range allActions {
				key := [3]string{string(principal), string(target), string(action)}
				expected := allowed[key]
				got := CanAct(principalWithRank(principal), target, action)
				assert.Equalf(t, expected, got, "%s %s %s", principal, action, target)
			}
		}
	}
}

func TestCanAct_AdminUndeletable(t *testing.T) {
	// The delete protection must hold even for the highest rank.
	p := principalWithRank(types.RankSuperAdmin)
	assert.True(t, CanAct(p, types.RankAdmin, types.ActionEdit))
	assert.True(t, CanAct(p, types.RankAdmin, types.ActionSuspend))
	assert.False(t, CanAct(p, types.RankAdmin, types.ActionDelete))
}

func TestHasReviewAccess(t *testing.T) {
	assert.True(t, HasReviewAccess(principalWithRank(types.RankSuperAdmin)))
	assert.True(t, HasReviewAccess(principalWithRank(types.RankAdmin)))
	assert.False(t, HasReviewAccess(principalWithRank(types.RankVIP)))
	assert.False(t, HasReviewAccess(principalWithRank(types.RankUser)))
}
