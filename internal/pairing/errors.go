package pairing

import "errors"

var (
	// ErrInsufficientMembers is returned when fewer than two distinct accounts
	// can take part in a draw.
	ErrInsufficientMembers = errors.New("at least two members with accounts are required")

	// ErrUnresolvableAfterRetries is returned when no permutation without a
	// self pair was found within the attempt bound. Retrying is safe.
	ErrUnresolvableAfterRetries = errors.New("no valid pairing found, try again")

	// ErrPersistence is returned when the new assignment set could not be
	// written. The previous assignment set is left untouched.
	ErrPersistence = errors.New("failed to store assignments")
)
