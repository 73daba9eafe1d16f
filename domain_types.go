package jsonbind

import (
	"context"
	"reflect"
)

// ValueMarshaler is the capability interface for types that supply their own
// serialization hook. Implementing it suppresses structural serialization for
// the type entirely; deserialization is unaffected unless ValueUnmarshaler is
// implemented as well.
type ValueMarshaler interface {
	MarshalValue(ctx context.Context) (any, error)
}

// ValueUnmarshaler is the deserialization-side capability interface. It is
// implemented with a pointer receiver; the engine allocates a fresh value and
// hands the raw value tree to the hook.
type ValueUnmarshaler interface {
	UnmarshalValue(ctx context.Context, data any) error
}

// Union is implemented by tagged-union wrapper types. Alternatives are
// ordered and order is significant: deserialization tries them first to last,
// and the first alternative that parses without a shape mismatch wins.
//
// Union2/Union3/Union4 are ready-made wrappers; user types may implement the
// interface directly (together with UnionSetter) to get the same treatment.
type Union interface {
	// UnionAlternatives returns the member types in declared order.
	UnionAlternatives() []reflect.Type
	// UnionValue returns the active alternative's value.
	UnionValue() any
}

// UnionSetter must be implemented on the pointer type so the deserializer can
// store the winning alternative.
type UnionSetter interface {
	Union
	SetUnionValue(v any)
}

// Union2 is a union of two alternatives, tried in declared order.
type Union2[A, B any] struct{ Value any }

func (Union2[A, B]) UnionAlternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeOf((*A)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem()}
}
func (u Union2[A, B]) UnionValue() any      { return u.Value }
func (u *Union2[A, B]) SetUnionValue(v any) { u.Value = v }

// Union3 is a union of three alternatives, tried in declared order.
type Union3[A, B, C any] struct{ Value any }

func (Union3[A, B, C]) UnionAlternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeOf((*A)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem(), reflect.TypeOf((*C)(nil)).Elem()}
}
func (u Union3[A, B, C]) UnionValue() any      { return u.Value }
func (u *Union3[A, B, C]) SetUnionValue(v any) { u.Value = v }

// Union4 is a union of four alternatives, tried in declared order.
type Union4[A, B, C, D any] struct{ Value any }

func (Union4[A, B, C, D]) UnionAlternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeOf((*A)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem(), reflect.TypeOf((*C)(nil)).Elem(), reflect.TypeOf((*D)(nil)).Elem()}
}
func (u Union4[A, B, C, D]) UnionValue() any      { return u.Value }
func (u *Union4[A, B, C, D]) SetUnionValue(v any) { u.Value = v }

// tupleType is implemented by the fixed-arity heterogeneous tuple wrappers.
// Homogeneous fixed-arity tuples are plain Go arrays and need no wrapper.
type tupleType interface {
	tupleItems() []reflect.Type
}

// Pair is a fixed two-element tuple encoded as a JSON array of length two.
type Pair[A, B any] struct {
	First  A
	Second B
}

func (Pair[A, B]) tupleItems() []reflect.Type {
	return []reflect.Type{reflect.TypeOf((*A)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem()}
}

// Triple is a fixed three-element tuple encoded as a JSON array of length
// three.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (Triple[A, B, C]) tupleItems() []reflect.Type {
	return []reflect.Type{reflect.TypeOf((*A)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem(), reflect.TypeOf((*C)(nil)).Elem()}
}
