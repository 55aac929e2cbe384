// Package snapshot defines the exportable view of a labelset: plain
// record types that round-trip through JSON without loss, plus a store
// for persisting them. Records carry no behavior and no references back
// into the live registry — mutating a snapshot never touches the
// labelset it was taken from.
package snapshot

import (
	"maps"
	"slices"
	"time"
)

// Document maps case id to the exported record for that case.
type Document map[string]CaseRecord

// CaseRecord is the exported view of one case: its identity, the full
// ordered event log, and the final state of every branch.
type CaseRecord struct {
	ID       string                  `json:"id"`
	Events   []EventRecord           `json:"events"`
	Branches map[string]BranchRecord `json:"branches"`
}

// EventRecord is one entry of a case's append-only event log.
type EventRecord struct {
	ID       string    `json:"id"`
	Actor    string    `json:"actor"`
	Revision string    `json:"revision"`
	Action   string    `json:"action"`
	At       time.Time `json:"at"`
}

// BranchRecord is the exported state of one branch.
type BranchRecord struct {
	LatestRevision string `json:"latest_revision"`
	IsSubmitted    bool   `json:"is_submitted"`
	ApprovedCount  int    `json:"approved_count"`
	RejectedCount  int    `json:"rejected_count"`
	NeedsUpdates   bool   `json:"needs_updates"`
	IsActive       bool   `json:"is_active"`
}

// Clone returns an independent deep copy of the document.
func (d Document) Clone() Document {
	copied := make(Document, len(d))
	for id, rec := range d {
		copied[id] = rec.Clone()
	}
	return copied
}

// Clone returns an independent deep copy of the case record.
func (r CaseRecord) Clone() CaseRecord {
	return CaseRecord{
		ID:       r.ID,
		Events:   slices.Clone(r.Events),
		Branches: maps.Clone(r.Branches),
	}
}
