package labelset

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the workflow operation an event records.
type Action string

const (
	ActionAnnotate     Action = "annotate"
	ActionSignOff      Action = "sign_off"
	ActionReviewPassed Action = "review_passed"
	ActionReviewFailed Action = "review_failed"
	ActionMerge        Action = "merge"
)

// Event is one immutable entry of a case's append-only log. Actor is the
// branch the action applies to — a user for direct operations, the merged
// branch name for a merge. Insertion order is authoritative; ID and At
// are provenance metadata.
type Event struct {
	ID       string
	Actor    string
	Revision string
	Action   Action
	At       time.Time
}

// newEvent creates a log entry with a unique UUIDv7 identifier.
func newEvent(actor, revision string, action Action) Event {
	return Event{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Actor:    actor,
		Revision: revision,
		Action:   action,
		At:       time.Now().UTC(),
	}
}
