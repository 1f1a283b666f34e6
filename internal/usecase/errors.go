package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotReady              = errors.New("standings not loaded yet")
	ErrMalformedPayload      = errors.New("malformed standings payload")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
