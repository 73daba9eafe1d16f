package codec

import (
	"context"

	jsonbind "github.com/reoring/jsonbind"
)

// BytesBase64 returns a Codec between standard base64 strings and byte
// slices. Decoding is strict: padding and alphabet violations are reported
// rather than tolerated.
func BytesBase64() Codec[string, []byte] {
	return base64Codec{}
}

type base64Codec struct{}

func (base64Codec) Decode(ctx context.Context, a string) ([]byte, error) {
	b, err := jsonbind.ParseBytes(a)
	if err != nil {
		return nil, jsonbind.Issues{{Path: "/", Code: jsonbind.CodeInvalidFormat, Message: "invalid base64 payload", Cause: err}}
	}
	return b, nil
}

func (base64Codec) Encode(ctx context.Context, b []byte) (string, error) {
	return jsonbind.FormatBytes(b), nil
}
