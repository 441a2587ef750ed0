// Package lifecycle defines the application review state machine. Every
// allowed transition is enumerated in one table; services consult it before
// issuing the conditional status update, and the store's guard on the
// current status makes the transition atomic under concurrent reviewers.
package lifecycle

import "github.com/jonathan/talent-portal/internal/types"

// Actor identifies who is driving a transition.
type Actor int

const (
	// ActorReviewer is a staff principal acting through the review endpoint.
	ActorReviewer Actor = iota
	// ActorApplicant is the application's owner acting through withdrawal.
	ActorApplicant
)

type edge struct {
	from  types.ApplicationStatus
	to    types.ApplicationStatus
	actor Actor
}

// transitions is the complete set of legal (state, action) pairs. Returned
// has no outgoing edges: the portal has never allowed resubmission or
// further review after a return, and this table keeps that explicit.
var transitions = []edge{
	{types.ApplicationPending, types.ApplicationApproved, ActorReviewer},
	{types.ApplicationPending, types.ApplicationRejected, ActorReviewer},
	{types.ApplicationPending, types.ApplicationReturned, ActorReviewer},
	{types.ApplicationPending, types.ApplicationWithdrawn, ActorApplicant},
}

// CanTransition reports whether the actor may move an application from one
// status to another.
func CanTransition(from, to types.ApplicationStatus, actor Actor) bool {
	for _, e := range transitions {
		if e.from == from && e.to == to && e.actor == actor {
			return true
		}
	}
	return false
}

// Terminal reports whether no actor can move an application out of the
// given status.
func Terminal(status types.ApplicationStatus) bool {
	for _, e := range transitions {
		if e.from == status {
			return false
		}
	}
	return true
}

// ReviewOutcomes lists the statuses a reviewer may assign to a pending
// application.
func ReviewOutcomes() []types.ApplicationStatus {
	return []types.ApplicationStatus{
		types.ApplicationApproved,
		types.ApplicationRejected,
		types.ApplicationReturned,
	}
}
