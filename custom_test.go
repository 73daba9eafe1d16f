package jsonbind_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	jsonbind "github.com/reoring/jsonbind"
)

// rgb exercises custom conversion hooks in both directions.
type rgb struct {
	R, G, B uint8
}

func (c rgb) MarshalValue(ctx context.Context) (any, error) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

func (c *rgb) UnmarshalValue(ctx context.Context, data any) error {
	s, ok := data.(string)
	if !ok || !strings.HasPrefix(s, "#") || len(s) != 7 {
		return jsonbind.Issues{{Path: "/", Code: jsonbind.CodeInvalidFormat, Message: "expected #rrggbb"}}
	}
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return err
}

func TestCustomHooks_Roundtrip(t *testing.T) {
	ctx := context.Background()
	in := rgb{R: 0x12, G: 0x34, B: 0x56}

	tree, err := jsonbind.Encode(ctx, in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if tree != "#123456" {
		t.Fatalf("custom encode: %v", tree)
	}

	out, err := jsonbind.Decode[rgb](ctx, tree)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip: %+v", out)
	}
}

func TestCustomHooks_ErrorPathPrefixed(t *testing.T) {
	type palette struct {
		Primary rgb `json:"primary"`
	}
	_, err := jsonbind.Decode[palette](context.Background(), map[string]any{"primary": "123456"})
	iss, ok := jsonbind.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Path != "/primary" || iss[0].Code != jsonbind.CodeInvalidFormat {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestCustomHooks_PointerFieldIsOptional(t *testing.T) {
	type palette struct {
		Accent *rgb `json:"accent"`
	}
	out, err := jsonbind.Encode(context.Background(), palette{})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if _, present := out.(map[string]any)["accent"]; present {
		t.Fatalf("nil custom pointer must be omitted: %v", out)
	}
}

func TestClassify_CustomBeatsRecord(t *testing.T) {
	// rgb is a struct, but the hooks take precedence over record treatment.
	tree, err := jsonbind.Encode(context.Background(), rgb{})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if _, ok := tree.(string); !ok {
		t.Fatalf("expected hook output, got %T", tree)
	}
}
