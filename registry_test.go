package jsonbind_test

import (
	"context"
	"reflect"
	"testing"

	jsonbind "github.com/reoring/jsonbind"
)

type priority int

func TestRegisterEnum_IntValued(t *testing.T) {
	jsonbind.RegisterEnum(priority(1), priority(2), priority(3))

	td, err := jsonbind.Classify(reflect.TypeOf((*priority)(nil)).Elem())
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if td.Kind != jsonbind.KindEnum {
		t.Fatalf("kind: %v", td.Kind)
	}
	if len(td.Values) != 3 {
		t.Fatalf("members: %v", td.Values)
	}
}

func TestRegisterEnumValues_RejectsEmpty(t *testing.T) {
	type unused string
	err := jsonbind.RegisterEnumValues(reflect.TypeOf((*unused)(nil)).Elem())
	if !jsonbind.IsUnsupportedType(err) {
		t.Fatalf("expected unsupported type for empty member list, got %v", err)
	}
}

func TestRegisterEnumValues_RejectsMixedTypes(t *testing.T) {
	type mixed string
	err := jsonbind.RegisterEnumValues(reflect.TypeOf((*mixed)(nil)).Elem(), mixed("a"), 7)
	if !jsonbind.IsUnsupportedType(err) {
		t.Fatalf("expected unsupported type for mixed members, got %v", err)
	}
}

func TestRegisterEnumValues_RejectsNonPrimitive(t *testing.T) {
	type structured struct{ X int }
	err := jsonbind.RegisterEnumValues(reflect.TypeOf((*structured)(nil)).Elem(), structured{1})
	if !jsonbind.IsUnsupportedType(err) {
		t.Fatalf("expected unsupported type for struct members, got %v", err)
	}
}

func TestRegisterDefaultFor_Factory(t *testing.T) {
	type bucket struct {
		Items []string `json:"items"`
	}
	jsonbind.RegisterDefaultFor[bucket]("Items", func() any { return []string{} })

	fields, err := jsonbind.FieldsOf(reflect.TypeOf((*bucket)(nil)).Elem())
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if fields[0].Requiredness != jsonbind.DefaultFactory {
		t.Fatalf("requiredness: %v", fields[0].Requiredness)
	}
	if got := fields[0].Factory(); len(got.([]string)) != 0 {
		t.Fatalf("factory: %v", got)
	}
}

func TestDecode_FactoryAppliedForAbsentKey(t *testing.T) {
	type inbox struct {
		Tags []string `json:"tags"`
	}
	jsonbind.RegisterDefaultFor[inbox]("Tags", func() any { return []string{"untagged"} })

	got, err := jsonbind.Decode[inbox](context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "untagged" {
		t.Fatalf("factory default not applied: %v", got.Tags)
	}

	got, err = jsonbind.Decode[inbox](context.Background(), map[string]any{"tags": []any{"a"}})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "a" {
		t.Fatalf("present value must win over factory: %v", got.Tags)
	}
}

func TestDecode_FactoryValueTypeMismatch(t *testing.T) {
	type outbox struct {
		Limit int `json:"limit"`
	}
	jsonbind.RegisterDefaultFor[outbox]("Limit", func() any { return "unbounded" })

	_, err := jsonbind.Decode[outbox](context.Background(), map[string]any{})
	iss, ok := jsonbind.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Code != jsonbind.CodeInvalidValue || iss[0].Path != "/limit" {
		t.Fatalf("expected invalid_value at /limit, got %v", iss)
	}
}
