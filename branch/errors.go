package branch

import "errors"

// Sentinel errors for branch transitions.
var (
	ErrAlreadySubmitted = errors.New("branch already submitted")
	ErrNotSubmitted     = errors.New("branch not submitted")
)
