package database

import "errors"

var (
	// ErrRoomNotFound no room with the given id exists.
	ErrRoomNotFound = errors.New("room not found")

	// ErrReservationNotFound no reservation with the given id exists.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrBlockedDateNotFound no blocked date with the given id exists.
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrNotAvailable the room has a conflicting reservation or blocked
	// date inside the requested range.
	ErrNotAvailable = errors.New("room is not available for the requested dates")

	// ErrInvalidDateRange check-in is not strictly before check-out.
	ErrInvalidDateRange = errors.New("check-in date must be before check-out date")

	// ErrEmailMismatch guest cancellation with a non-matching email.
	ErrEmailMismatch = errors.New("email does not match the reservation")

	// ErrNotCancellable guest cancellation outside pending status.
	ErrNotCancellable = errors.New("reservation can no longer be cancelled by the guest")

	// ErrInvalidTransition the requested status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPastDate booking date lies in the past.
	ErrPastDate = errors.New("date is in the past")

	// ErrDateTooFar booking date exceeds the allowed horizon.
	ErrDateTooFar = errors.New("date is too far in the future")

	// ErrCapacityExceeded requested occupants exceed room capacity.
	ErrCapacityExceeded = errors.New("room capacity exceeded")
)
