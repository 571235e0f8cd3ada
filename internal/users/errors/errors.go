package errors

import "errors"

var (
	ErrNotFound  = errors.New("user not found")
	ErrInvalidID = errors.New("invalid user ID format")

	// ErrInvalidCredentials covers both an unknown loginID and a wrong
	// password, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("Invalid credentials")
)
