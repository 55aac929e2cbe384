package branch_test

import (
	"errors"
	"testing"

	"github.com/tailored-agentic-units/labelset/branch"
)

func TestNew(t *testing.T) {
	s := branch.New("rev_1")

	if s.LatestRevision != "rev_1" {
		t.Errorf("got LatestRevision %q, want %q", s.LatestRevision, "rev_1")
	}
	if s.Phase != branch.Draft {
		t.Errorf("got Phase %v, want %v", s.Phase, branch.Draft)
	}
	if s.Submitted() {
		t.Error("fresh state should not be submitted")
	}
	if s.ApprovedCount != 0 || s.RejectedCount != 0 {
		t.Errorf("fresh state should have zero counters, got %d/%d", s.ApprovedCount, s.RejectedCount)
	}
	if s.NeedsUpdates {
		t.Error("fresh state should not need updates")
	}
	if !s.Active {
		t.Error("fresh state should be active")
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		name  string
		phase branch.Phase
		want  string
	}{
		{name: "draft", phase: branch.Draft, want: "draft"},
		{name: "submitted", phase: branch.Submitted, want: "submitted"},
		{name: "out of range", phase: branch.Phase(99), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.want {
				t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
			}
		})
	}
}

func TestState_SignOff(t *testing.T) {
	s := branch.New("rev_1").SignOff()

	if !s.Submitted() {
		t.Error("signed-off state should be submitted")
	}
	if s.LatestRevision != "rev_1" {
		t.Errorf("got LatestRevision %q, want %q (sign off keeps the revision)", s.LatestRevision, "rev_1")
	}
}

func TestState_Reannotate_ResetsEverything(t *testing.T) {
	s := branch.New("rev_1").SignOff()
	s, err := s.ReviewFailed()
	if err != nil {
		t.Fatalf("ReviewFailed() error = %v", err)
	}
	s = s.Withdraw()

	next, err := s.Reannotate("rev_2")
	if err != nil {
		t.Fatalf("Reannotate() error = %v", err)
	}

	if next.LatestRevision != "rev_2" {
		t.Errorf("got LatestRevision %q, want %q", next.LatestRevision, "rev_2")
	}
	if next.Submitted() {
		t.Error("re-annotated state should be a draft")
	}
	if next.ApprovedCount != 0 || next.RejectedCount != 0 {
		t.Errorf("re-annotation should reset counters, got %d/%d", next.ApprovedCount, next.RejectedCount)
	}
	if next.NeedsUpdates {
		t.Error("re-annotation should clear NeedsUpdates")
	}
}

func TestState_Reannotate_BlockedWhenSubmitted(t *testing.T) {
	s := branch.New("rev_1").SignOff()

	next, err := s.Reannotate("rev_2")
	if !errors.Is(err, branch.ErrAlreadySubmitted) {
		t.Fatalf("Reannotate() error = %v, want ErrAlreadySubmitted", err)
	}
	if next.LatestRevision != "rev_1" {
		t.Errorf("failed Reannotate changed revision to %q, want %q", next.LatestRevision, "rev_1")
	}
}

func TestState_ReviewPassed(t *testing.T) {
	s := branch.New("rev_1").SignOff()

	for i := 1; i <= 3; i++ {
		var err error
		s, err = s.ReviewPassed()
		if err != nil {
			t.Fatalf("ReviewPassed() #%d error = %v", i, err)
		}
		if s.ApprovedCount != i {
			t.Errorf("got ApprovedCount %d, want %d", s.ApprovedCount, i)
		}
	}

	if !s.Submitted() {
		t.Error("branch should stay submitted across reviews")
	}
	if s.NeedsUpdates {
		t.Error("passing reviews should not set NeedsUpdates")
	}
}

func TestState_ReviewFailed(t *testing.T) {
	s := branch.New("rev_1").SignOff()

	s, err := s.ReviewFailed()
	if err != nil {
		t.Fatalf("ReviewFailed() error = %v", err)
	}

	if s.RejectedCount != 1 {
		t.Errorf("got RejectedCount %d, want 1", s.RejectedCount)
	}
	if !s.NeedsUpdates {
		t.Error("failing review should set NeedsUpdates")
	}
	if !s.Submitted() {
		t.Error("failing review should not withdraw the branch")
	}
}

func TestState_Review_RequiresSubmission(t *testing.T) {
	tests := []struct {
		name   string
		review func(branch.State) (branch.State, error)
	}{
		{name: "passed", review: branch.State.ReviewPassed},
		{name: "failed", review: branch.State.ReviewFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := branch.New("rev_1")

			got, err := tt.review(s)
			if !errors.Is(err, branch.ErrNotSubmitted) {
				t.Fatalf("review error = %v, want ErrNotSubmitted", err)
			}
			if got != s {
				t.Errorf("failed review mutated state: got %+v, want %+v", got, s)
			}
		})
	}
}

func TestState_MixedReviews(t *testing.T) {
	s := branch.New("rev_1").SignOff()

	var err error
	for i := 0; i < 2; i++ {
		if s, err = s.ReviewPassed(); err != nil {
			t.Fatalf("ReviewPassed() error = %v", err)
		}
	}
	if s, err = s.ReviewFailed(); err != nil {
		t.Fatalf("ReviewFailed() error = %v", err)
	}

	if s.ApprovedCount != 2 {
		t.Errorf("got ApprovedCount %d, want 2", s.ApprovedCount)
	}
	if s.RejectedCount != 1 {
		t.Errorf("got RejectedCount %d, want 1", s.RejectedCount)
	}
	if !s.NeedsUpdates {
		t.Error("NeedsUpdates should be sticky after any rejection")
	}
}

func TestState_Deactivate(t *testing.T) {
	s := branch.New("rev_1").SignOff()
	s, err := s.ReviewPassed()
	if err != nil {
		t.Fatalf("ReviewPassed() error = %v", err)
	}

	got := s.Deactivate()

	if got.Active {
		t.Error("deactivated state should not be active")
	}
	if !got.Submitted() || got.ApprovedCount != 1 {
		t.Errorf("Deactivate should preserve the rest of the state, got %+v", got)
	}
	if !s.Active {
		t.Error("Deactivate mutated its receiver; states are values")
	}
}

func TestState_Withdraw(t *testing.T) {
	s := branch.New("rev_1").SignOff()
	s, err := s.ReviewFailed()
	if err != nil {
		t.Fatalf("ReviewFailed() error = %v", err)
	}

	got := s.Withdraw()

	if got.Submitted() {
		t.Error("withdrawn state should be a draft")
	}
	if got.RejectedCount != 1 || !got.NeedsUpdates {
		t.Errorf("Withdraw should keep counters, got %+v", got)
	}
}
