package labelset

import "sync/atomic"

// MetricsSnapshot is a point-in-time read of workflow counters.
type MetricsSnapshot struct {
	CasesCreated  int64
	Annotations   int64
	SignOffs      int64
	ReviewsPassed int64
	ReviewsFailed int64
	Merges        int64
}

// metrics counts successful workflow operations. Counters only advance on
// operations that mutated state; guard failures are not recorded.
type metrics struct {
	casesCreated  atomic.Int64
	annotations   atomic.Int64
	signOffs      atomic.Int64
	reviewsPassed atomic.Int64
	reviewsFailed atomic.Int64
	merges        atomic.Int64
}

func (m *metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		CasesCreated:  m.casesCreated.Load(),
		Annotations:   m.annotations.Load(),
		SignOffs:      m.signOffs.Load(),
		ReviewsPassed: m.reviewsPassed.Load(),
		ReviewsFailed: m.reviewsFailed.Load(),
		Merges:        m.merges.Load(),
	}
}
