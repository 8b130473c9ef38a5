package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicate reports a second submission for the same
	// (assignment, student) pair. Backed by a unique index, so it also
	// catches callers racing past the eligibility check.
	ErrDuplicate = errors.New("duplicate submission")
)
