package jsonbind

import (
	"fmt"
	"reflect"
	"sync"
)

// memberSet describes a registered enumeration or literal set: the declared
// member values of one named primitive type, in declaration order.
type memberSet struct {
	typ     reflect.Type
	kind    reflect.Kind
	members []any
	index   map[any]struct{}
}

// contains reports whether v (already converted to the registered type) is a
// declared member.
func (m *memberSet) contains(v any) bool {
	_, ok := m.index[v]
	return ok
}

var (
	enumRegistry    sync.Map // reflect.Type -> *memberSet
	literalRegistry sync.Map // reflect.Type -> *memberSet

	defaultRegistry sync.Map // fieldKey -> func() any
)

type fieldKey struct {
	typ   reflect.Type
	field string
}

func newMemberSet(t reflect.Type, members []any) (*memberSet, error) {
	if len(members) == 0 {
		return nil, &UnsupportedTypeError{Type: t, Reason: "at least one member value required"}
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, &UnsupportedTypeError{Type: t, Reason: "member values must share one underlying primitive type"}
	}
	ms := &memberSet{typ: t, kind: t.Kind(), index: make(map[any]struct{}, len(members))}
	var memberType reflect.Type
	for _, m := range members {
		mt := reflect.TypeOf(m)
		if memberType == nil {
			memberType = mt
		} else if mt != memberType {
			// Members must be value-homogeneous; mixed underlying types are a
			// construction error, mirrored from the map-key restriction.
			return nil, &UnsupportedTypeError{
				Type:   t,
				Reason: fmt.Sprintf("inconsistent member value types: %s and %s", memberType, mt),
			}
		}
		if !mt.ConvertibleTo(t) {
			return nil, &UnsupportedTypeError{
				Type:   t,
				Reason: fmt.Sprintf("member value of type %s is not convertible", mt),
			}
		}
		cv := reflect.ValueOf(m).Convert(t).Interface()
		ms.members = append(ms.members, cv)
		ms.index[cv] = struct{}{}
	}
	return ms, nil
}

// RegisterEnum declares the members of an enumeration type. E must be a named
// primitive type; serialization emits the underlying value and
// deserialization performs a strict member lookup. Registration replaces any
// previous member set for E.
func RegisterEnum[E comparable](members ...E) {
	t := reflect.TypeOf((*E)(nil)).Elem()
	values := make([]any, len(members))
	for i, m := range members {
		values[i] = m
	}
	ms, err := newMemberSet(t, values)
	if err != nil {
		panic(err)
	}
	enumRegistry.Store(t, ms)
}

// RegisterEnumValues is the untyped variant of RegisterEnum. Unlike the
// generic form it can receive values of differing dynamic types, so the
// value-homogeneity rule is checked here and reported as a construction
// error.
func RegisterEnumValues(t reflect.Type, members ...any) error {
	ms, err := newMemberSet(t, members)
	if err != nil {
		return err
	}
	enumRegistry.Store(t, ms)
	return nil
}

// RegisterLiteral declares the admissible values of a literal type. The type
// serializes to the value itself; input carrying any other value is treated
// as a type-shape mismatch so that literal-tagged union alternatives can be
// discriminated by ordered trial.
func RegisterLiteral[T comparable](values ...T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	ms, err := newMemberSet(t, vs)
	if err != nil {
		panic(err)
	}
	literalRegistry.Store(t, ms)
}

// RegisterLiteralValues is the untyped variant of RegisterLiteral, with the
// same value-homogeneity construction check as RegisterEnumValues.
func RegisterLiteralValues(t reflect.Type, values ...any) error {
	ms, err := newMemberSet(t, values)
	if err != nil {
		return err
	}
	literalRegistry.Store(t, ms)
	return nil
}

// RegisterFieldDefault installs a default-value factory for one field of a
// record type, keyed by the Go field name. The factory runs each time the
// property is absent from (or null in) the input.
func RegisterFieldDefault(t reflect.Type, field string, factory func() any) {
	defaultRegistry.Store(fieldKey{typ: t, field: field}, factory)
}

// RegisterDefaultFor is the generic convenience form of RegisterFieldDefault.
func RegisterDefaultFor[T any](field string, factory func() any) {
	RegisterFieldDefault(reflect.TypeOf((*T)(nil)).Elem(), field, factory)
}

func enumSetOf(t reflect.Type) (*memberSet, bool) {
	v, ok := enumRegistry.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*memberSet), true
}

func literalSetOf(t reflect.Type) (*memberSet, bool) {
	v, ok := literalRegistry.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*memberSet), true
}

func fieldDefaultFactory(t reflect.Type, field string) (func() any, bool) {
	v, ok := defaultRegistry.Load(fieldKey{typ: t, field: field})
	if !ok {
		return nil, false
	}
	return v.(func() any), true
}
