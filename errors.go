package taskboard

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrWithoutID     = errors.New("missing identifier")
	ErrTimeOverlap   = errors.New("time overlap with a scheduled item")
	ErrInvalid       = errors.New("invalid item")

	// Persistence failures
	ErrMalformedRecord = errors.New("malformed record")
	ErrSave            = errors.New("failed to save store")
)
