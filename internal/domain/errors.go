package domain

import "errors"

var (
	// ErrUserNotFound means the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrVectorNotFound means the user exists but the profiling
	// pipeline has not produced a preference vector yet.
	ErrVectorNotFound = errors.New("user vector not found")

	// ErrUnknownDomain means no adapter is registered for the
	// requested inventory domain.
	ErrUnknownDomain = errors.New("unknown domain")
)
