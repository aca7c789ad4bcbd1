package model

import "errors"

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores on a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate row")
	// ErrDuplicateAccountNumber is returned when a generated account number
	// collides with an existing one; the caller retries with a fresh number.
	ErrDuplicateAccountNumber = errors.New("duplicate account number")
)
