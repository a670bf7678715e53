package domain

import "errors"

// Domain errors. NotFound kinds mean the referenced record does not exist;
// the rest are conflicts with a domain invariant. Anything else that comes
// out of an operation is a storage failure and passes through unchanged.
var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrNoSeatsAvailable        = errors.New("no seats available")
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")
	ErrEmailAlreadyRegistered  = errors.New("email already registered")
)
