package sequence

import (
	"testing"
	"time"
)

func TestFormatBookingNo(t *testing.T) {
	day := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	if got := FormatBookingNo(day, 1); got != "24050101" {
		t.Errorf("expected 24050101, got %s", got)
	}
	if got := FormatBookingNo(day, 42); got != "24050142" {
		t.Errorf("expected 24050142, got %s", got)
	}
	// Past 99 the rendered suffix wraps while staying two digits wide.
	if got := FormatBookingNo(day, 100); got != "24050100" {
		t.Errorf("expected 24050100, got %s", got)
	}
	if got := FormatBookingNo(day, 101); got != "24050101" {
		t.Errorf("expected 24050101, got %s", got)
	}
}

func TestNextBookingNo(t *testing.T) {
	day := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	if got := NextBookingNo(day, ""); got != "24050201" {
		t.Errorf("expected first number 24050201, got %s", got)
	}

	// The suffix continues from the last booking even when that booking
	// was created on an earlier day.
	if got := NextBookingNo(day, "24043007"); got != "24050208" {
		t.Errorf("expected 24050208, got %s", got)
	}
}

func TestSuffixOf(t *testing.T) {
	cases := []struct {
		bookingNo string
		want      int
	}{
		{"24050101", 1},
		{"24050199", 99},
		{"24050100", 0},
		{"", 0},
		{"x", 0},
		{"2405xx", 0},
	}
	for _, c := range cases {
		if got := SuffixOf(c.bookingNo); got != c.want {
			t.Errorf("SuffixOf(%q) = %d, want %d", c.bookingNo, got, c.want)
		}
	}
}

func TestNextSerial(t *testing.T) {
	if got := NextSerial(0); got != 1 {
		t.Errorf("expected first serial 1, got %d", got)
	}
	if got := NextSerial(41); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 5, 1, 23, 45, 0, 0, time.FixedZone("UTC+3", 3*3600))
	if got := DateOnly(ts); got != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %s", got)
	}
}
