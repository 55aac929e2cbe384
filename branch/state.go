// Package branch models the review workflow state machine for a single
// branch of work on a case. A branch is one annotator's (or one merged
// line's) progression through annotate → sign off → review.
//
// State is a plain value. Callers hold states by value in their own
// indexes and replace the entry on every transition, so no two holders
// ever alias the same mutable state. All transition methods take a value
// receiver and return the successor state.
package branch

// Phase is the submission phase of a branch.
type Phase int

const (
	// Draft means the branch has annotated content that has not been
	// signed off. Review operations are rejected in this phase.
	Draft Phase = iota
	// Submitted means the branch was signed off and is eligible for
	// review. Review outcomes accumulate without leaving this phase.
	Submitted
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Draft:
		return "draft"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// State is the workflow state of one branch. The zero value is not
// meaningful; construct with New.
//
// Active distinguishes live branches from branches folded into a merge.
// Deactivation is bookkeeping only — it does not block transitions, so a
// deactivated branch can still be inspected or even re-annotated.
type State struct {
	LatestRevision string
	Phase          Phase
	ApprovedCount  int
	RejectedCount  int
	NeedsUpdates   bool
	Active         bool
}

// New creates a Draft state for a freshly annotated revision. Re-annotating
// an existing branch replaces its state with New's result wholesale: new
// content invalidates any prior reviews, so counters and flags start over.
func New(revision string) State {
	return State{
		LatestRevision: revision,
		Phase:          Draft,
		Active:         true,
	}
}

// Reannotate replaces the state with a fresh Draft state for revision,
// discarding counters and flags. Fails with ErrAlreadySubmitted if the
// branch is submitted: overwriting work that is in front of a reviewer
// must be an explicit decision, not a silent side effect.
func (s State) Reannotate(revision string) (State, error) {
	if s.Phase == Submitted {
		return s, ErrAlreadySubmitted
	}
	return New(revision), nil
}

// Submitted reports whether the branch is in the Submitted phase.
func (s State) Submitted() bool {
	return s.Phase == Submitted
}

// SignOff marks the branch's latest revision ready for review.
// Signing off an already-submitted branch is a no-op.
func (s State) SignOff() State {
	s.Phase = Submitted
	return s
}

// ReviewPassed records an approving review. Fails with ErrNotSubmitted
// unless the branch is submitted; the returned state is then unchanged.
func (s State) ReviewPassed() (State, error) {
	if s.Phase != Submitted {
		return s, ErrNotSubmitted
	}
	s.ApprovedCount++
	return s, nil
}

// ReviewFailed records a rejecting review and flags the branch as needing
// updates. NeedsUpdates is sticky: only a fresh annotation clears it.
// Fails with ErrNotSubmitted unless the branch is submitted.
func (s State) ReviewFailed() (State, error) {
	if s.Phase != Submitted {
		return s, ErrNotSubmitted
	}
	s.RejectedCount++
	s.NeedsUpdates = true
	return s, nil
}

// Withdraw moves a submitted branch back to Draft without touching its
// counters. Used when a merge inherits an unsubmitted source.
func (s State) Withdraw() State {
	s.Phase = Draft
	return s
}

// Deactivate marks the branch as folded into a merge. The rest of the
// state is preserved so the export still shows how the branch ended.
func (s State) Deactivate() State {
	s.Active = false
	return s
}
