package utils

import (
	"fmt"
	"time"
)

// DateKey normalizes any instant to the canonical day key used for all
// (user, date) lookups: 12:00:00 UTC on that calendar date. Noon keeps the
// key inside the same calendar day regardless of how the collaborator
// resolved the user's local day.
func DateKey(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 12, 0, 0, 0, time.UTC)
}

// ParseDateKey parses a YYYY-MM-DD string into the canonical day key.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return DateKey(t), nil
}

// SameDay reports whether two instants fall on the same canonical day.
func SameDay(a, b time.Time) bool {
	return DateKey(a).Equal(DateKey(b))
}

// EndOfDay returns the last instant of the calendar day containing the key,
// in the given location. Used for recommendation expiry.
func EndOfDay(dateKey time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	u := dateKey.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc)
	return start.AddDate(0, 0, 1).Add(-time.Second)
}

// StartOfWeek returns the day key of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	key := DateKey(t)
	wd := int(key.Weekday())
	if wd == 0 {
		wd = 7
	}
	return key.AddDate(0, 0, -(wd - 1))
}

// StartOfMonth / EndOfMonth return the day keys bounding t's month.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 12, 0, 0, 0, time.UTC)
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// UserLocation resolves an IANA timezone name, falling back to UTC.
func UserLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
