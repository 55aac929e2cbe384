package labelset

import (
	"github.com/tailored-agentic-units/labelset/branch"
	"github.com/tailored-agentic-units/labelset/snapshot"
)

// caseState aggregates one data point's branches and its event log.
// Branch states are held by value; operations replace the map entry so
// no state is ever shared by reference. Cases are owned exclusively by
// one Labelset and only touched under its lock.
type caseState struct {
	id       string
	events   []Event
	branches map[string]branch.State
}

func newCase(id string) *caseState {
	return &caseState{
		id:       id,
		branches: make(map[string]branch.State),
	}
}

// log appends one entry to the event log. Called exactly once per
// successful mutating operation, after all guards have passed.
func (c *caseState) log(actor, revision string, action Action) {
	c.events = append(c.events, newEvent(actor, revision, action))
}

// record builds the exported view of the case. Everything is copied, so
// the record stays valid and immutable after the registry moves on.
func (c *caseState) record() snapshot.CaseRecord {
	events := make([]snapshot.EventRecord, len(c.events))
	for i, e := range c.events {
		events[i] = snapshot.EventRecord{
			ID:       e.ID,
			Actor:    e.Actor,
			Revision: e.Revision,
			Action:   string(e.Action),
			At:       e.At,
		}
	}

	branches := make(map[string]snapshot.BranchRecord, len(c.branches))
	for name, s := range c.branches {
		branches[name] = snapshot.BranchRecord{
			LatestRevision: s.LatestRevision,
			IsSubmitted:    s.Submitted(),
			ApprovedCount:  s.ApprovedCount,
			RejectedCount:  s.RejectedCount,
			NeedsUpdates:   s.NeedsUpdates,
			IsActive:       s.Active,
		}
	}

	return snapshot.CaseRecord{ID: c.id, Events: events, Branches: branches}
}
