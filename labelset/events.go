package labelset

import "github.com/tailored-agentic-units/labelset/observability"

// Labelset event types emitted during workflow operations.
const (
	EventCaseCreate   observability.EventType = "labelset.case.create"
	EventAnnotate     observability.EventType = "labelset.annotate"
	EventSignOff      observability.EventType = "labelset.sign_off"
	EventReviewPassed observability.EventType = "labelset.review.passed"
	EventReviewFailed observability.EventType = "labelset.review.failed"
	EventMerge        observability.EventType = "labelset.merge"
	EventSnapshot     observability.EventType = "labelset.snapshot"
	EventError        observability.EventType = "labelset.error"
)
