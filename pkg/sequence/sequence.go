// Package sequence holds the booking identifier formats: the global serial
// counter and the date-encoded booking number (YYMMDD plus a two-digit
// running suffix). The suffix is system-wide and never resets at midnight;
// it is always "last value + 1" relative to the most recent booking.
package sequence

import (
	"fmt"
	"strconv"
	"time"
)

const bookingNoDateLayout = "060102"

// FormatBookingNo builds the booking number for the given day and suffix.
// The suffix wraps modulo 100 so the number is always eight characters;
// the counter behind it keeps growing, only the rendering wraps.
func FormatBookingNo(now time.Time, suffix int) string {
	return now.Format(bookingNoDateLayout) + fmt.Sprintf("%02d", suffix%100)
}

// NextBookingNo derives the next booking number from the most recent one.
// When lastBookingNo is empty the suffix starts at 01.
func NextBookingNo(now time.Time, lastBookingNo string) string {
	return FormatBookingNo(now, SuffixOf(lastBookingNo)+1)
}

// SuffixOf parses the trailing two characters of a booking number as its
// counter value. Returns 0 when there is no usable suffix, so the next
// allocation starts at 01.
func SuffixOf(bookingNo string) int {
	if len(bookingNo) < 2 {
		return 0
	}
	n, err := strconv.Atoi(bookingNo[len(bookingNo)-2:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextSerial returns the serial following last, starting at 1.
func NextSerial(last int) int {
	if last <= 0 {
		return 1
	}
	return last + 1
}

// DateOnly normalizes a timestamp to its calendar date in UTC, the form
// booked dates are compared in.
func DateOnly(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
