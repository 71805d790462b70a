package utils

import (
	"testing"
	"time"
)

func TestDateKeyNormalizesToNoonUTC(t *testing.T) {
	cases := []time.Time{
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
	}
	want := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for _, in := range cases {
		if got := DateKey(in); !got.Equal(want) {
			t.Errorf("DateKey(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestDateKeyIsIdempotent(t *testing.T) {
	key := DateKey(time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC))
	if got := DateKey(key); !got.Equal(key) {
		t.Errorf("DateKey(DateKey(t)) = %v, want %v", got, key)
	}
}

func TestParseDateKey(t *testing.T) {
	got, err := ParseDateKey("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	want := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDateKey = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "2025-3-10", "10/03/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDateKey(bad); err == nil {
			t.Errorf("ParseDateKey(%q) succeeded, want error", bad)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 23, 58, 0, 0, time.UTC)
	c := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("same calendar day reported as different")
	}
	if SameDay(b, c) {
		t.Error("different calendar days reported as same")
	}
}

func TestEndOfDay(t *testing.T) {
	key := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got := EndOfDay(key, time.UTC)
	want := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay UTC = %v, want %v", got, want)
	}

	// nil location falls back to UTC
	if got := EndOfDay(key, nil); !got.Equal(want) {
		t.Errorf("EndOfDay nil loc = %v, want %v", got, want)
	}
}

func TestEndOfDayInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	key := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got := EndOfDay(key, loc)
	want := time.Date(2025, 3, 10, 23, 59, 59, 0, loc)
	if !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	monday := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // a Monday
	cases := []time.Time{
		monday,
		monday.AddDate(0, 0, 2), // Wednesday
		monday.AddDate(0, 0, 6), // Sunday
	}
	for _, in := range cases {
		got := StartOfWeek(in)
		if !got.Equal(monday) {
			t.Errorf("StartOfWeek(%v) = %v, want %v", in, got, monday)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("StartOfWeek(%v).Weekday() = %v, want Monday", in, got.Weekday())
		}
	}
}

func TestMonthBounds(t *testing.T) {
	in := time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)

	start := StartOfMonth(in)
	if !start.Equal(time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfMonth = %v", start)
	}
	end := EndOfMonth(in)
	if !end.Equal(time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("EndOfMonth = %v (2025 is not a leap year)", end)
	}
}

func TestUserLocation(t *testing.T) {
	if loc := UserLocation(""); loc != time.UTC {
		t.Errorf("empty name = %v, want UTC", loc)
	}
	if loc := UserLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("bad name = %v, want UTC", loc)
	}
	if loc := UserLocation("Europe/Paris"); loc.String() != "Europe/Paris" && loc != time.UTC {
		t.Errorf("valid name = %v", loc)
	}
}
