package bookings

import "errors"

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrValidation        = errors.New("booking draft failed validation")
	ErrBookingFinalized  = errors.New("booking is completed or cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrRateLimited       = errors.New("rate limited")
)
