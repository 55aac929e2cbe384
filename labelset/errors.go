package labelset

import "errors"

// Sentinel errors for the case registry.
var (
	ErrCaseExists      = errors.New("case already exists")
	ErrCaseNotFound    = errors.New("case not found")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrNoSnapshotStore = errors.New("no snapshot store configured")
)
