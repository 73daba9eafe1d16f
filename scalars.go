package jsonbind

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// ErrMissingTimezone reports a timestamp or clock string that carries no
// explicit time zone designator. It is a semantic violation, never swallowed
// during union trial.
var ErrMissingTimezone = errors.New("timestamp lacks explicit time zone designator")

// FormatTimestamp renders a timestamp in RFC3339 form. Instants with a zero
// UTC offset render with the literal Z marker rather than +00:00; fractional
// seconds are emitted only when present.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp parses an RFC3339 timestamp. A trailing Z is accepted as
// equivalent to +00:00. Timestamps with no offset at all are rejected with
// ErrMissingTimezone.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Distinguish "valid but zone-less" from "not a timestamp at all".
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMissingTimezone, s)
		}
	}
	return time.Time{}, fmt.Errorf("invalid RFC3339 timestamp: %q", s)
}

// Date is a calendar date without a time zone, passed through in ISO 8601
// text form (2006-01-02).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf builds a Date from its parts.
func DateOf(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate parses an ISO 8601 calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid ISO 8601 date: %q", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// TimeOfDay is a wall-clock time without a time zone, passed through in
// ISO 8601 text form (15:04:05 with optional fractional seconds).
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// TimeOfDayOf builds a TimeOfDay from its parts.
func TimeOfDayOf(hour, minute, second, nanosecond int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second, Nanosecond: nanosecond}
}

func (t TimeOfDay) String() string {
	base := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond == 0 {
		return base
	}
	frac := fmt.Sprintf("%09d", t.Nanosecond)
	for len(frac) > 0 && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	return base + "." + frac
}

// ParseTimeOfDay parses an ISO 8601 wall-clock time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05.999999999", "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid ISO 8601 time: %q", s)
}

// FormatBytes renders a byte blob as standard base64 text.
func FormatBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// ParseBytes decodes standard base64 text, rejecting malformed input rather
// than decoding leniently.
func ParseBytes(s string) ([]byte, error) {
	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return b, nil
}
