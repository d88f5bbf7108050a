package repository

import "errors"

var (
	// ErrNotFound is returned when a keyed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when an insert collides on a primary key.
	// Generated ids are best-effort unique, so this can genuinely happen.
	ErrDuplicateID = errors.New("duplicate id")
)
