package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrNoneForHotel and ErrNoneForBookingNo surface empty filter results
	// as explicit not-found conditions; the API never answers these
	// listings with an empty array.
	ErrNoneForHotel = errors.New("no bookings found for this hotel ID")

	ErrNoneForBookingNo = errors.New("no bookings found for this booking number")
)
