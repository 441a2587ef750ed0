// Package authz computes which accounts and applications a staff principal
// may see and act on. All functions are pure; handlers feed their results
// into store queries rather than filtering in memory.
package authz

import (
	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/types"
)

// VisibleRanks returns the set of ranks whose accounts the principal may
// list. An empty slice means no administrative visibility at all.
//
// super_admin sees every rank (self-exclusion is by id, see ExcludeSelf);
// admin sees only user and vip accounts; everyone else sees nothing.
func VisibleRanks(principal types.Principal) []types.Rank {
	switch principal.Rank {
	case types.RankSuperAdmin:
		return []types.Rank{types.RankSuperAdmin, types.RankAdmin, types.RankVIP, types.RankUser}
	case types.RankAdmin:
		return []types.Rank{types.RankVIP, types.RankUser}
	default:
		return nil
	}
}

// ExcludeSelf reports whether the principal's own account must be omitted
// from directory listings. Only super_admins can otherwise see their own
// rank, so the exclusion only matters there.
func ExcludeSelf(principal types.Principal) bool {
	return principal.Rank == types.RankSuperAdmin
}

// RankVisible reports whether accounts of the given rank fall inside the
// principal's visible range.
func RankVisible(principal types.Principal, rank types.Rank) bool {
	for _, r := range VisibleRanks(principal) {
		if r == rank {
			return true
		}
	}
	return false
}

// AccountVisible reports whether a specific account is inside the
// principal's visible set.
func AccountVisible(principal types.Principal, targetID uuid.UUID, targetRank types.Rank) bool {
	if targetID == principal.ID && ExcludeSelf(principal) {
		return false
	}
	return RankVisible(principal, targetRank)
}

// CanAct reports whether the principal may perform the given administrative
// action on an account of the given rank.
//
// The delete rule is deliberately asymmetric with edit/suspend: an admin
// account can never be deleted by anyone, including a super_admin.
func CanAct(principal types.Principal, targetRank types.Rank, action types.AccountAction) bool {
	switch principal.Rank {
	case types.RankSuperAdmin:
		switch action {
		case types.ActionEdit, types.ActionSuspend:
			return targetRank != types.RankSuperAdmin
		case types.ActionDelete:
			return targetRank != types.RankSuperAdmin && targetRank != types.RankAdmin
		}
		return false
	case types.RankAdmin:
		switch action {
		case types.ActionEdit, types.ActionSuspend, types.ActionDelete:
			return targetRank == types.RankUser || targetRank == types.RankVIP
		}
		return false
	default:
		return false
	}
}

// HasReviewAccess reports whether the principal has any reviewer-facing
// visibility at all. Application visibility derives from account
// visibility: a reviewer sees exactly the applications of visible
// applicants, with no per-posting ownership restriction.
func HasReviewAccess(principal types.Principal) bool {
	return len(VisibleRanks(principal)) > 0
}
