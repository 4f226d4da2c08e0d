package errorvalues

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidCredential = errors.New("wrong PIN for this name")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrStoreUnavailable  = errors.New("document store unavailable")
	ErrNotFound          = errors.New("not found")
	ErrNoActiveUser      = errors.New("no active user")
)
