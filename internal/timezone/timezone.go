package timezone

import (
	"fmt"
	"strings"
	"time"
)

const DefaultTimezone = "Asia/Kolkata"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today returns the current calendar day in tz, as stored in date columns.
func Today(tz string) time.Time {
	return CalendarDay(NowIn(tz))
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp and
// returns the calendar day as UTC midnight, which is how date columns round-trip.
func ParseDate(s string, tz string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}

	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	local := ts.In(Location(tz))
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CalendarDay keeps the wall-clock day of t and drops the rest.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
