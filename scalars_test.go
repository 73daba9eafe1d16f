package jsonbind_test

import (
	"errors"
	"testing"
	"time"

	jsonbind "github.com/reoring/jsonbind"
)

func TestFormatTimestamp_UTCTrailingZ(t *testing.T) {
	ts := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	if got := jsonbind.FormatTimestamp(ts); got != "2025-05-06T07:08:09Z" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTimestamp_TrimsTrailingZeros(t *testing.T) {
	ts := time.Date(2025, 5, 6, 7, 8, 9, 120_000_000, time.UTC)
	if got := jsonbind.FormatTimestamp(ts); got != "2025-05-06T07:08:09.12Z" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTimestamp_RejectsMissingZone(t *testing.T) {
	_, err := jsonbind.ParseTimestamp("2025-05-06T07:08:09")
	if !errors.Is(err, jsonbind.ErrMissingTimezone) {
		t.Fatalf("expected ErrMissingTimezone, got %v", err)
	}
	_, err = jsonbind.ParseTimestamp("2025-05-06T07:08:09.5")
	if !errors.Is(err, jsonbind.ErrMissingTimezone) {
		t.Fatalf("expected ErrMissingTimezone, got %v", err)
	}
}

func TestParseTimestamp_Garbage(t *testing.T) {
	_, err := jsonbind.ParseTimestamp("not a time")
	if err == nil || errors.Is(err, jsonbind.ErrMissingTimezone) {
		t.Fatalf("expected plain parse error, got %v", err)
	}
}

func TestDate_Roundtrip(t *testing.T) {
	d, err := jsonbind.ParseDate("1989-10-23")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if d.String() != "1989-10-23" {
		t.Fatalf("got %q", d.String())
	}
	if _, err := jsonbind.ParseDate("1989-13-01"); err == nil {
		t.Fatalf("expected error for month 13")
	}
}

func TestTimeOfDay_Roundtrip(t *testing.T) {
	v, err := jsonbind.ParseTimeOfDay("23:59:59")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if v.String() != "23:59:59" {
		t.Fatalf("got %q", v.String())
	}
	v, err = jsonbind.ParseTimeOfDay("06:15:30.25")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if v.String() != "06:15:30.25" {
		t.Fatalf("fractional: %q", v.String())
	}
}

func TestBytes_StrictBase64(t *testing.T) {
	if got := jsonbind.FormatBytes([]byte{0x41, 0x4e}); got != "QU4=" {
		t.Fatalf("format: %q", got)
	}
	b, err := jsonbind.ParseBytes("QU4=")
	if err != nil || string(b) != "AN" {
		t.Fatalf("parse: %v %v", b, err)
	}
	if _, err := jsonbind.ParseBytes("QU4"); err == nil {
		t.Fatalf("expected error for missing padding")
	}
}
