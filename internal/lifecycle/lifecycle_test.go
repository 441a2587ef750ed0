package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-portal/internal/types"
)

// TestCanTransition walks the full status x status grid for both actors.
// Only four edges exist, all out of pending.
func TestCanTransition(t *testing.T) {
	allStatuses := []types.ApplicationStatus{
		types.ApplicationPending,
		types.ApplicationApproved,
		types.ApplicationRejected,
		types.ApplicationReturned,
		types.ApplicationWithdrawn,
	}

	type key struct {
		from  types.ApplicationStatus
		to    types.ApplicationStatus
		actor Actor
	}
	allowed := map[key]bool{
		{types.ApplicationPending, types.ApplicationApproved, ActorReviewer}:  true,
		{types.ApplicationPending, types.ApplicationRejected, ActorReviewer}:  true,
		{types.ApplicationPending, types.ApplicationReturned, ActorReviewer}:  true,
		{types.ApplicationPending, types.ApplicationWithdrawn, ActorApplicant}: true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			for _, actor := range []Actor{ActorReviewer, ActorApplicant} {
				expected := allowed[key{from, to, actor}]
				got := CanTransition(from, to, actor)
				assert.Equalf(t, expected, got, "%s -> %s by actor %d", from, to, actor)
			}
		}
	}
}

func TestCanTransition_ActorMismatch(t *testing.T) {
	// A reviewer cannot withdraw and an applicant cannot approve.
	assert.False(t, CanTransition(types.ApplicationPending, types.ApplicationWithdrawn, ActorReviewer))
	assert.False(t, CanTransition(types.ApplicationPending, types.ApplicationApproved, ActorApplicant))
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		status   types.ApplicationStatus
		terminal bool
	}{
		{types.ApplicationPending, false},
		{types.ApplicationApproved, true},
		{types.ApplicationRejected, true},
		{types.ApplicationWithdrawn, true},
		// Returned has no outgoing edges: no resubmission, no re-review.
		{types.ApplicationReturned, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, Terminal(tt.status))
		})
	}
}

func TestReviewOutcomes(t *testing.T) {
	outcomes := ReviewOutcomes()
	assert.ElementsMatch(t, []types.ApplicationStatus{
		types.ApplicationApproved,
		types.ApplicationRejected,
		types.ApplicationReturned,
	}, outcomes)

	for _, status := range outcomes {
		assert.True(t, CanTransition(types.ApplicationPending, status, ActorReviewer))
	}
}
