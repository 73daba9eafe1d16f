package jsonbind_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	jsonbind "github.com/reoring/jsonbind"
)

func TestDeserialize_RecordStrictRejectsUnknownKeys(t *testing.T) {
	_, err := jsonbind.Decode[note](context.Background(), map[string]any{
		"value": int64(23),
		"extra": int64(42),
	})
	iss, ok := jsonbind.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if len(iss) != 1 || iss[0].Code != jsonbind.CodeUnknownKey || iss[0].Path != "/extra" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestDeserialize_RecordMissingRequired(t *testing.T) {
	_, err := jsonbind.Decode[note](context.Background(), map[string]any{})
	iss, ok := jsonbind.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != jsonbind.CodeRequired || iss[0].Path != "/value" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestDeserialize_RecordNullOptional(t *testing.T) {
	got, err := jsonbind.Decode[note](context.Background(), map[string]any{
		"value":   int64(1),
		"comment": nil,
	})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Comment != nil {
		t.Fatalf("null optional must stay nil, got %v", *got.Comment)
	}
}

func TestDeserialize_IntRejectsFractional(t *testing.T) {
	for _, in := range []any{1.5, json.Number("1.5"), "1"} {
		_, err := jsonbind.Decode[int](context.Background(), in)
		iss, ok := jsonbind.AsIssues(err)
		if !ok || iss[0].Code != jsonbind.CodeInvalidType {
			t.Fatalf("input %v: expected invalid_type, got %v", in, err)
		}
	}
}

func TestDeserialize_IntAcceptsNumberSyntax(t *testing.T) {
	got, err := jsonbind.Decode[int](context.Background(), json.Number("42"))
	if err != nil || got != 42 {
		t.Fatalf("decode: %v %v", got, err)
	}
}

func TestDeserialize_IntOverflow(t *testing.T) {
	_, err := jsonbind.Decode[int8](context.Background(), int64(300))
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidValue {
		t.Fatalf("expected invalid_value, got %v", err)
	}
}

func TestDeserialize_UintRejectsNegative(t *testing.T) {
	_, err := jsonbind.Decode[uint](context.Background(), int64(-1))
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidValue {
		t.Fatalf("expected invalid_value, got %v", err)
	}
}

func TestDeserialize_FloatAcceptsInteger(t *testing.T) {
	got, err := jsonbind.Decode[float64](context.Background(), int64(3))
	if err != nil || got != 3.0 {
		t.Fatalf("decode: %v %v", got, err)
	}
}

func TestDeserialize_Bytes(t *testing.T) {
	got, err := jsonbind.Decode[[]byte](context.Background(), "QU4=")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if string(got) != "AN" {
		t.Fatalf("bytes: %v", got)
	}
	_, err = jsonbind.Decode[[]byte](context.Background(), "not base64!")
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", err)
	}
}

func TestDeserialize_TimestampOffsetForms(t *testing.T) {
	a, err := jsonbind.Decode[time.Time](context.Background(), "2025-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("Z form: %v", err)
	}
	b, err := jsonbind.Decode[time.Time](context.Background(), "2025-01-01T00:00:00+00:00")
	if err != nil {
		t.Fatalf("+00:00 form: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("instants differ: %v vs %v", a, b)
	}
}

func TestDeserialize_TimestampMissingZone(t *testing.T) {
	_, err := jsonbind.Decode[time.Time](context.Background(), "2025-01-01T00:00:00")
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidValue {
		t.Fatalf("expected invalid_value for zone-less timestamp, got %v", err)
	}
	if jsonbind.IsShapeMismatch(err) {
		t.Fatalf("zone-less timestamp is a semantic violation, not a shape mismatch")
	}
}

func TestDeserialize_EnumStrictLookup(t *testing.T) {
	got, err := jsonbind.Decode[colour](context.Background(), "green")
	if err != nil || got != colourGreen {
		t.Fatalf("decode: %v %v", got, err)
	}
	_, err = jsonbind.Decode[colour](context.Background(), "magenta")
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum, got %v", err)
	}
	if jsonbind.IsShapeMismatch(err) {
		t.Fatalf("unknown enum value is semantic, not shape")
	}
}

func TestDeserialize_MemberSetMapKeys(t *testing.T) {
	got, err := jsonbind.Decode[map[colour]int](context.Background(), map[string]any{"red": int64(1)})
	if err != nil || got[colourRed] != 1 {
		t.Fatalf("enum-keyed map: %v %v", got, err)
	}
	_, err = jsonbind.Decode[map[colour]int](context.Background(), map[string]any{"magenta": int64(1)})
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidEnum || iss[0].Path != "/magenta" {
		t.Fatalf("expected invalid_enum at /magenta, got %v", err)
	}

	// Literal-typed keys get the same membership check.
	lit, err := jsonbind.Decode[map[shapeKind]int](context.Background(), map[string]any{"circle": int64(2)})
	if err != nil || lit[shapeKind("circle")] != 2 {
		t.Fatalf("literal-keyed map: %v %v", lit, err)
	}
	_, err = jsonbind.Decode[map[shapeKind]int](context.Background(), map[string]any{"square": int64(2)})
	iss, ok = jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeInvalidEnum || iss[0].Path != "/square" {
		t.Fatalf("expected invalid_enum at /square, got %v", err)
	}
}

func TestDeserialize_ListErrorPath(t *testing.T) {
	_, err := jsonbind.Decode[[]int](context.Background(), []any{int64(1), "x", int64(3)})
	iss, ok := jsonbind.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Path != "/1" {
		t.Fatalf("path: %v", iss[0].Path)
	}
}

func TestDeserialize_TupleArity(t *testing.T) {
	_, err := jsonbind.Decode[jsonbind.Pair[string, int]](context.Background(), []any{"only"})
	iss, ok := jsonbind.AsIssues(err)
	if !ok || iss[0].Code != jsonbind.CodeLengthMismatch {
		t.Fatalf("expected length_mismatch, got %v", err)
	}
	if jsonbind.IsShapeMismatch(err) {
		t.Fatalf("arity mismatch is semantic, not shape")
	}
}

func TestDeserialize_Set(t *testing.T) {
	got, err := jsonbind.Decode[map[string]struct{}](context.Background(), []any{"a", "b", "a"})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("set: %v", got)
	}
}

func TestDeserialize_DefaultsApplied(t *testing.T) {
	type job struct {
		Name    string `json:"name"`
		Retries int    `json:"retries" jsonbind:"default=3"`
	}
	got, err := jsonbind.Decode[job](context.Background(), map[string]any{"name": "sync"})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Retries != 3 {
		t.Fatalf("default not applied: %+v", got)
	}
	got, err = jsonbind.Decode[job](context.Background(), map[string]any{"name": "sync", "retries": int64(7)})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Retries != 7 {
		t.Fatalf("explicit value must win: %+v", got)
	}
}

func TestDeserialize_AllIssuesCollected(t *testing.T) {
	_, err := jsonbind.Decode[note](context.Background(), map[string]any{
		"comment": int64(5),
		"bogus":   true,
	})
	iss, ok := jsonbind.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if len(iss) != 3 {
		t.Fatalf("expected missing value + bad comment + unknown bogus, got %v", iss)
	}
}
