package snapshot_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/tailored-agentic-units/labelset/snapshot"
)

func sampleDocument() snapshot.Document {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return snapshot.Document{
		"dp_1": snapshot.CaseRecord{
			ID: "dp_1",
			Events: []snapshot.EventRecord{
				{ID: "ev_1", Actor: "user_1", Revision: "rev_1", Action: "annotate", At: at},
				{ID: "ev_2", Actor: "user_1", Revision: "rev_1", Action: "sign_off", At: at.Add(time.Minute)},
				{ID: "ev_3", Actor: "merged", Revision: "rev_m", Action: "merge", At: at.Add(2 * time.Minute)},
			},
			Branches: map[string]snapshot.BranchRecord{
				"user_1": {LatestRevision: "rev_1", IsSubmitted: true, ApprovedCount: 2, RejectedCount: 1, NeedsUpdates: true},
				"merged": {LatestRevision: "rev_m", IsSubmitted: true, IsActive: true},
			},
		},
		"dp_2": snapshot.CaseRecord{ID: "dp_2", Branches: map[string]snapshot.BranchRecord{}},
	}
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got snapshot.Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip lost data:\ngot  %+v\nwant %+v", got, doc)
	}
}

func TestDocument_FieldNames(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	branches, ok := raw["dp_1"]["branches"].(map[string]any)
	if !ok {
		t.Fatal("missing branches mapping")
	}
	b, ok := branches["user_1"].(map[string]any)
	if !ok {
		t.Fatal("missing branch user_1")
	}

	for _, field := range []string{
		"latest_revision", "is_submitted", "approved_count",
		"rejected_count", "needs_updates", "is_active",
	} {
		if _, ok := b[field]; !ok {
			t.Errorf("branch record missing field %q", field)
		}
	}

	events, ok := raw["dp_1"]["events"].([]any)
	if !ok || len(events) == 0 {
		t.Fatal("missing events list")
	}
	ev := events[0].(map[string]any)
	for _, field := range []string{"id", "actor", "revision", "action", "at"} {
		if _, ok := ev[field]; !ok {
			t.Errorf("event record missing field %q", field)
		}
	}
}

func TestDocument_Clone_IsIndependent(t *testing.T) {
	doc := sampleDocument()

	cloned := doc.Clone()
	rec := cloned["dp_1"]
	rec.Events[0].Revision = "tampered"
	rec.Branches["user_1"] = snapshot.BranchRecord{LatestRevision: "tampered"}

	if doc["dp_1"].Events[0].Revision != "rev_1" {
		t.Error("mutating clone changed original events")
	}
	if doc["dp_1"].Branches["user_1"].LatestRevision != "rev_1" {
		t.Error("mutating clone changed original branches")
	}
}
