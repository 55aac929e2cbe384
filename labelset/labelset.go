// Package labelset tracks annotation and review workflow state for a
// collection of cases. Each case moves through a branching review
// process — annotate → sign off → review → merge — with one branch per
// annotator plus synthetic merged branches. The Labelset registry owns
// all cases, applies every transition through the branch state machine,
// and records one event-log entry per successful mutation.
//
//	ls := labelset.New(observability.NewSlogObserver(logger))
//	ls.CreateCase("dp_1")
//	ls.Annotate("dp_1", "user_1", "rev_1")
//	ls.SignOff("dp_1", "user_1", "rev_1")
//	ls.ReviewPassed("dp_1", "reviewer", "rev_1")
//	doc := ls.Snapshot()
package labelset

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/tailored-agentic-units/labelset/branch"
	"github.com/tailored-agentic-units/labelset/observability"
	"github.com/tailored-agentic-units/labelset/snapshot"
)

// Labelset is the case registry. It is safe for concurrent use: every
// operation runs under a single registry lock, so each call observes and
// produces a consistent interleaving-free state.
type Labelset struct {
	mu       sync.Mutex
	cases    map[string]*caseState
	observer observability.Observer
	store    snapshot.Store
	metrics  metrics
}

// Option configures a Labelset after config-driven initialization.
// Applied by FromConfig — overrides replace config-created defaults.
type Option func(*Labelset)

// WithObserver overrides the config-resolved observer.
func WithObserver(observer observability.Observer) Option {
	return func(l *Labelset) {
		if observer != nil {
			l.observer = observer
		}
	}
}

// WithStore overrides the config-created snapshot store.
func WithStore(store snapshot.Store) Option {
	return func(l *Labelset) { l.store = store }
}

// New creates an empty Labelset emitting to the given observer.
// If observer is nil, NoOpObserver is used automatically.
func New(observer observability.Observer) *Labelset {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return &Labelset{
		cases:    make(map[string]*caseState),
		observer: observer,
	}
}

// CreateCase registers a new empty case. Fails with ErrCaseExists if the
// id is already registered; the existing case is untouched.
func (l *Labelset) CreateCase(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.cases[id]; exists {
		return l.reject("create_case", fmt.Errorf("%w: %s", ErrCaseExists, id))
	}

	l.cases[id] = newCase(id)
	l.metrics.casesCreated.Add(1)
	l.emit(EventCaseCreate, observability.LevelInfo, map[string]any{"case": id})
	return nil
}

// Case returns the exported view of one case, or ErrCaseNotFound. The
// returned record is a copy; mutating it does not affect the registry.
func (l *Labelset) Case(id string) (snapshot.CaseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cases[id]
	if !ok {
		return snapshot.CaseRecord{}, fmt.Errorf("%w: %s", ErrCaseNotFound, id)
	}
	return c.record(), nil
}

// CaseIDs returns the ids of all registered cases in sorted order.
func (l *Labelset) CaseIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Sorted(maps.Keys(l.cases))
}

// Annotate records new content for a branch, creating the branch on
// first use. An existing branch is reset wholesale — prior reviews are
// invalidated by the new content — unless it is currently submitted, in
// which case the call fails with branch.ErrAlreadySubmitted.
func (l *Labelset) Annotate(id, user, revision string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cases[id]
	if !ok {
		return l.reject("annotate", fmt.Errorf("%w: %s", ErrCaseNotFound, id))
	}

	st, exists := c.branches[user]
	if exists {
		next, err := st.Reannotate(revision)
		if err != nil {
			return l.reject("annotate", fmt.Errorf("%w: case %s branch %s", err, id, user))
		}
		c.branches[user] = next
	} else {
		c.branches[user] = branch.New(revision)
	}

	c.log(user, revision, ActionAnnotate)
	l.metrics.annotations.Add(1)
	l.emit(EventAnnotate, observability.LevelInfo, map[string]any{
		"case": id, "branch": user, "revision": revision,
	})
	return nil
}

// SignOff marks a branch's latest revision ready for review. Fails with
// ErrCaseNotFound or ErrBranchNotFound if the target does not exist.
func (l *Labelset) SignOff(id, user, revision string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cases[id]
	if !ok {
		return l.reject("sign_off", fmt.Errorf("%w: %s", ErrCaseNotFound, id))
	}
	st, ok := c.branches[user]
	if !ok {
		return l.reject("sign_off", fmt.Errorf("%w: case %s branch %s", ErrBranchNotFound, id, user))
	}

	c.branches[user] = st.SignOff()
	c.log(user, revision, ActionSignOff)
	l.metrics.signOffs.Add(1)
	l.emit(EventSignOff, observability.LevelInfo, map[string]any{
		"case": id, "branch": user, "revision": revision,
	})
	return nil
}

// ReviewPassed records an approving review on a submitted branch.
// Fails with branch.ErrNotSubmitted if the branch was never signed off;
// counters are untouched on failure.
func (l *Labelset) ReviewPassed(id, user, revision string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cases[id]
	if !ok {
		return l.reject("review_passed", fmt.Errorf("%w: %s", ErrCaseNotFound, id))
	}
	st, ok := c.branches[user]
	if !ok {
		return l.reject("review_passed", fmt.Errorf("%w: case %s branch %s", ErrBranchNotFound, id, user))
	}

	next, err := st.ReviewPassed()
	if err != nil {
		return l.reject("review_passed", fmt.Errorf("%w: case %s branch %s", err, id, user))
	}

	c.branches[user] = next
	c.log(user, revision, ActionReviewPassed)
	l.metrics.reviewsPassed.Add(1)
	l.emit(EventReviewPassed, observability.LevelInfo, map[string]any{
		"case": id, "branch": user, "revision": revision, "approved": next.ApprovedCount,
	})
	return nil
}

// ReviewFailed records a rejecting review on a submitted branch and
// marks it as needing updates. The branch stays submitted; the flag is
// only cleared by a fresh annotation.
func (l *Labelset) ReviewFailed(id, user, revision string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cases[id]
	if !ok {
		return l.reject("review_failed", fmt.Errorf("%w: %s", ErrCaseNotFound, id))
	}
	st, ok := c.branches[user]
	if !ok {
		return l.reject("review_failed", fmt.Errorf("%w: case %s branch %s", ErrBranchNotFound, id, user))
	}

	next, err := st.ReviewFailed()
	if err != nil {
		return l.reject("review_failed", fmt.Errorf("%w: case %s branch %s", err, id, user))
	}

	c.branches[user] = next
	c.log(user, revision, ActionReviewFailed)
	l.metrics.reviewsFailed.Add(1)
	l.emit(EventReviewFailed, observability.LevelInfo, map[string]any{
		"case": id, "branch": user, "revision": revision, "rejected": next.RejectedCount,
	})
	return nil
}

// MergeBranches folds the source branches into a new branch named
// mergedName, deactivating every source. The merged branch starts
// submitted only if all sources were submitted (logical AND); otherwise
// it starts as a draft. All sources are checked for existence before any
// state changes, so a missing source leaves the case untouched.
func (l *Labelset) MergeBranches(id string, sources []string, mergedName, revision string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cases[id]
	if !ok {
		return l.reject("merge_branches", fmt.Errorf("%w: %s", ErrCaseNotFound, id))
	}
	for _, name := range sources {
		if _, ok := c.branches[name]; !ok {
			return l.reject("merge_branches", fmt.Errorf("%w: case %s branch %s", ErrBranchNotFound, id, name))
		}
	}

	merged := branch.New(revision).SignOff()
	for _, name := range sources {
		src := c.branches[name]
		if !src.Submitted() {
			merged = merged.Withdraw()
		}
		c.branches[name] = src.Deactivate()
	}
	c.branches[mergedName] = merged

	c.log(mergedName, revision, ActionMerge)
	l.metrics.merges.Add(1)
	l.emit(EventMerge, observability.LevelInfo, map[string]any{
		"case": id, "sources": sources, "merged": mergedName, "revision": revision,
		"submitted": merged.Submitted(),
	})
	return nil
}

// Snapshot produces the exportable view of every case. The document is
// a deep copy taken under the registry lock: it round-trips through JSON
// without loss and later registry mutations never show through.
func (l *Labelset) Snapshot() snapshot.Document {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := make(snapshot.Document, len(l.cases))
	for id, c := range l.cases {
		doc[id] = c.record()
	}

	l.emit(EventSnapshot, observability.LevelVerbose, map[string]any{"cases": len(doc)})
	return doc
}

// Export saves the current snapshot to the configured store. Fails with
// ErrNoSnapshotStore when the Labelset was built without one.
func (l *Labelset) Export(ctx context.Context) error {
	if l.store == nil {
		return ErrNoSnapshotStore
	}
	return l.store.Save(ctx, l.Snapshot())
}

// Metrics returns a point-in-time read of the workflow counters.
func (l *Labelset) Metrics() MetricsSnapshot {
	return l.metrics.snapshot()
}

// reject emits a warning event for a guard violation and passes the
// error through unchanged.
func (l *Labelset) reject(op string, err error) error {
	l.emit(EventError, observability.LevelWarning, map[string]any{
		"op": op, "error": err.Error(),
	})
	return err
}

func (l *Labelset) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	l.observer.OnEvent(context.Background(), observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "labelset",
		Data:      data,
	})
}
