package errors

import "errors"

// Nested lookups report the first segment that misses, so the three levels
// carry distinct errors.
var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrCategoryNotFound = errors.New("room category not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidID        = errors.New("invalid hotel ID format")
)
