package session

import "github.com/ayoisaiah/guardian/internal/apperr"

var (
	// ErrInvalidInput is returned when a mission cannot be started with the
	// given task or duration. No state is changed.
	ErrInvalidInput = &apperr.Error{
		Message: "invalid mission: %s",
	}

	// ErrInvalidTransition is returned for commands that are not valid in the
	// current phase. It is never fatal.
	ErrInvalidTransition = &apperr.Error{
		Message: "cannot %s while %s",
	}
)
