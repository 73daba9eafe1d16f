package jsonbind_test

import (
	"context"
	"strings"
	"testing"

	jsonbind "github.com/reoring/jsonbind"
)

func TestDecodeFrom_JSONBytes(t *testing.T) {
	got, err := jsonbind.DecodeFrom[note](context.Background(), jsonbind.JSONBytes([]byte(`{"value":5}`)))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 5 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestDecodeFrom_JSONReader(t *testing.T) {
	r := strings.NewReader(`{"value":9,"comment":"r"}`)
	got, err := jsonbind.DecodeFrom[note](context.Background(), jsonbind.JSONReader(r))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 9 || got.Comment == nil || *got.Comment != "r" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestDecodeFrom_YAMLBytes(t *testing.T) {
	got, err := jsonbind.DecodeFrom[note](context.Background(), jsonbind.YAMLBytes([]byte("value: 3\n")))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 3 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestDecodeFrom_ValueSource(t *testing.T) {
	got, err := jsonbind.DecodeFrom[note](context.Background(), jsonbind.ValueSource(map[string]any{"value": int64(1)}))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Value != 1 {
		t.Fatalf("unexpected: %+v", got)
	}
}
