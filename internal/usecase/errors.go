package usecase

import "errors"

// ErrRunNotFound is returned by a RunStore for an unknown or expired run id.
var ErrRunNotFound = errors.New("run not found")
