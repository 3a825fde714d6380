package session

import "errors"

// Domain errors surfaced to callers for translation into user-facing messages.
var (
	// ErrNoActiveSession means the user has no session to operate on.
	ErrNoActiveSession = errors.New("no active session")

	// ErrEmployeeNotFound means the employee id is not in the session roster.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidFlag means the flag is not in the fixed allowed list.
	ErrInvalidFlag = errors.New("flag not in allowed list")

	// ErrInvalidRating means a move used a rating outside the 3-point scale.
	ErrInvalidRating = errors.New("invalid rating")
)
