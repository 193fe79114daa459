package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate")
	// ErrReferenceMissing is a foreign-key violation.
	ErrReferenceMissing = errors.New("referenced row missing")
)
