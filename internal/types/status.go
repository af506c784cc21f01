package types

import "fmt"

// Status is the lifecycle state of a carousel. It is the single source of
// truth for pipeline position: the API layer polls it without access to
// queue internals.
//
// Lifecycle:
//
//	draft/approved/generated → generating → generated
//	                                      ↘ draft (validation failure or fatal error)
//	generated → hires_ready (hi-res handler only)
type Status string

const (
	// StatusDraft is the initial state, and the rollback target after a
	// failed run.
	StatusDraft Status = "draft"

	// StatusApproved means the carousel content was signed off and may be
	// generated.
	StatusApproved Status = "approved"

	// StatusGenerating means an orchestrate job is in flight.
	StatusGenerating Status = "generating"

	// StatusGenerated means the full pipeline completed and validation passed.
	StatusGenerated Status = "generated"

	// StatusHiresReady means hi-res finals have been rendered.
	StatusHiresReady Status = "hires_ready"
)

// ParseStatus converts a stored string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusApproved, StatusGenerating, StatusGenerated, StatusHiresReady:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown carousel status %q", s)
	}
}

// CanTransition reports whether moving from s to next is a legal status
// transition. Illegal writes (e.g. hires_ready → generating without passing
// through generated) are rejected by the record store's status setter.
// Re-entering the current state is always legal: a redelivered job must be
// able to restart from the top after a crash mid-run.
func (s Status) CanTransition(next Status) bool {
	if next == s {
		return true
	}
	switch s {
	case StatusDraft, StatusApproved:
		return next == StatusGenerating || next == StatusApproved || next == StatusDraft
	case StatusGenerating:
		return next == StatusGenerated || next == StatusDraft
	case StatusGenerated:
		return next == StatusGenerating || next == StatusHiresReady || next == StatusDraft
	case StatusHiresReady:
		return next == StatusDraft || next == StatusApproved
	default:
		return false
	}
}

// CanGenerate reports whether a new orchestrate run may be requested for a
// carousel in this state.
func (s Status) CanGenerate() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusGenerated:
		return true
	default:
		return false
	}
}

// String returns the stored representation.
func (s Status) String() string {
	return string(s)
}
