// Package types provides shared type definitions used across the talent portal API.
package types

// Rank is an account's privilege tier. Ranks are totally ordered:
// super_admin > admin > vip > user.
type Rank string

const (
	RankSuperAdmin Rank = "super_admin"
	RankAdmin      Rank = "admin"
	RankVIP        Rank = "vip"
	RankUser       Rank = "user"
)

// rankOrdinal maps each rank to its position in the privilege order.
var rankOrdinal = map[Rank]int{
	RankUser:       0,
	RankVIP:        1,
	RankAdmin:      2,
	RankSuperAdmin: 3,
}

// Valid reports whether r is a known rank.
func (r Rank) Valid() bool {
	_, ok := rankOrdinal[r]
	return ok
}

// Ordinal returns the rank's position in the privilege order (user=0 ... super_admin=3).
// Unknown ranks sort below user.
func (r Rank) Ordinal() int {
	ord, ok := rankOrdinal[r]
	if !ok {
		return -1
	}
	return ord
}

// Outranks reports whether r is strictly higher privileged than other.
func (r Rank) Outranks(other Rank) bool {
	return r.Ordinal() > other.Ordinal()
}

// SameOrHigher reports whether r is at least as privileged as other.
func (r Rank) SameOrHigher(other Rank) bool {
	return r.Ordinal() >= other.Ordinal()
}

// ActivationStatus is an account's lifecycle state.
type ActivationStatus string

const (
	ActivationActive    ActivationStatus = "active"
	ActivationPending   ActivationStatus = "pending"
	ActivationSuspended ActivationStatus = "suspended"
)

// Valid reports whether s is a known activation status.
func (s ActivationStatus) Valid() bool {
	switch s {
	case ActivationActive, ActivationPending, ActivationSuspended:
		return true
	}
	return false
}

// PostingKind distinguishes the two kinds of posting an applicant may apply to.
type PostingKind string

const (
	PostingJob     PostingKind = "job"
	PostingProject PostingKind = "project"
)

// Valid reports whether k is a known posting kind.
func (k PostingKind) Valid() bool {
	return k == PostingJob || k == PostingProject
}

// PostingStatus is a posting's publication state. Applicants may only see
// and apply to published postings.
type PostingStatus string

const (
	PostingDraft     PostingStatus = "draft"
	PostingPublished PostingStatus = "published"
	PostingArchived  PostingStatus = "archived"
)

// Valid reports whether s is a known posting status.
func (s PostingStatus) Valid() bool {
	switch s {
	case PostingDraft, PostingPublished, PostingArchived:
		return true
	}
	return false
}

// ApplicationStatus is an application's position in the review lifecycle.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationReturned  ApplicationStatus = "returned"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected,
		ApplicationReturned, ApplicationWithdrawn:
		return true
	}
	return false
}

// AccountAction is an administrative action a principal may request against
// another account.
type AccountAction string

const (
	ActionEdit    AccountAction = "edit"
	ActionSuspend AccountAction = "suspend"
	ActionDelete  AccountAction = "delete"
)
