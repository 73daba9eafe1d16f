package jsonbind_test

import (
	"context"
	"testing"

	jsonbind "github.com/reoring/jsonbind"
)

func TestDecodeJSON_Basic(t *testing.T) {
	got, err := jsonbind.DecodeJSON[note](context.Background(), []byte(`{"value":23}`))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 23 || got.Comment != nil {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestDecodeJSON_FractionalIntoIntField(t *testing.T) {
	_, err := jsonbind.DecodeJSON[note](context.Background(), []byte(`{"value":23.5}`))
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidType {
		t.Fatalf("expected invalid_type for fractional input, got %v", err)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := jsonbind.DecodeJSON[note](context.Background(), []byte(`{"value":`))
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestEncodeJSON_Roundtrip(t *testing.T) {
	ctx := context.Background()
	c := "hi"
	data, err := jsonbind.EncodeJSON(ctx, note{Value: 7, Comment: &c})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	got, err := jsonbind.DecodeJSON[note](ctx, data)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 7 || got.Comment == nil || *got.Comment != "hi" {
		t.Fatalf("roundtrip: %+v", got)
	}
}

func TestDecodeYAML_Basic(t *testing.T) {
	src := []byte("value: 23\ncomment: hello\n")
	got, err := jsonbind.DecodeYAML[note](context.Background(), src)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 23 || got.Comment == nil || *got.Comment != "hello" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestDecodeYAML_UnknownKeyStillStrict(t *testing.T) {
	src := []byte("value: 1\nextra: true\n")
	_, err := jsonbind.DecodeYAML[note](context.Background(), src)
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeUnknownKey {
		t.Fatalf("expected unknown_key, got %v", err)
	}
}
