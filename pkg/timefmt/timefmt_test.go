package timefmt

import (
	"testing"
	"time"
)

func TestOrderTimestampEvening(t *testing.T) {
	instant := time.Date(2025, time.July, 24, 19, 45, 0, 0, time.Local)

	got := OrderTimestamp(instant)
	want := "24-Jul-2025 07:45 PM"
	if got != want {
		t.Errorf("OrderTimestamp() = %q, want %q", got, want)
	}
}

func TestOrderTimestampMidnight(t *testing.T) {
	instant := time.Date(2025, time.July, 24, 0, 5, 0, 0, time.Local)

	got := OrderTimestamp(instant)
	want := "24-Jul-2025 12:05 AM"
	if got != want {
		t.Errorf("OrderTimestamp() = %q, want %q", got, want)
	}
}

func TestOrderTimestampSingleDigitDay(t *testing.T) {
	instant := time.Date(2025, time.January, 3, 12, 0, 0, 0, time.Local)

	got := OrderTimestamp(instant)
	want := "03-Jan-2025 12:00 PM"
	if got != want {
		t.Errorf("OrderTimestamp() = %q, want %q", got, want)
	}
}
