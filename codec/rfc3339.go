package codec

import (
	"context"
	"time"

	jsonbind "github.com/reoring/jsonbind"
)

// TimeRFC3339 returns a Codec that converts between RFC 3339 strings and
// time.Time. Encoding renders UTC instants with a trailing Z; decoding
// rejects zone-less input the same way the record engine does.
func TimeRFC3339() Codec[string, time.Time] {
	return rfc3339Codec{}
}

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := jsonbind.ParseTimestamp(a)
	if err != nil {
		return time.Time{}, jsonbind.Issues{{Path: "/", Code: jsonbind.CodeInvalidFormat, Message: "invalid RFC3339 time", Cause: err}}
	}
	return t, nil
}

func (rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	return jsonbind.FormatTimestamp(b), nil
}

// DateISO returns a Codec between ISO 8601 calendar-date strings and
// jsonbind.Date values.
func DateISO() Codec[string, jsonbind.Date] {
	return dateCodec{}
}

type dateCodec struct{}

func (dateCodec) Decode(ctx context.Context, a string) (jsonbind.Date, error) {
	d, err := jsonbind.ParseDate(a)
	if err != nil {
		return jsonbind.Date{}, jsonbind.Issues{{Path: "/", Code: jsonbind.CodeInvalidFormat, Message: "invalid ISO date", Cause: err}}
	}
	return d, nil
}

func (dateCodec) Encode(ctx context.Context, b jsonbind.Date) (string, error) {
	return b.String(), nil
}
