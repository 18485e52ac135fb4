package core

import "errors"

var (
	// ErrNotFound is returned when no region has the requested id.
	ErrNotFound = errors.New("region not found")

	// ErrDuplicateID is returned by Create when the id is already in use.
	ErrDuplicateID = errors.New("region id already exists")

	// ErrMissingID is returned by Create when the region carries no id.
	ErrMissingID = errors.New("region id is required")
)
