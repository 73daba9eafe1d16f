package jsonbind

import (
	"context"
	"reflect"
)

// Encode converts a typed value into a JSON value tree using the codec
// derived from T. The codec is built on first use and cached for the life of
// the process.
func Encode[T any](ctx context.Context, v T) (any, error) {
	s, err := SerializerFor(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return s.Serialize(ctx, v)
}

// Decode parses a JSON value tree into a value of T, validating shape and
// semantics strictly along the way.
func Decode[T any](ctx context.Context, data any) (T, error) {
	var zero T
	d, err := DeserializerFor(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	out, err := d.Deserialize(ctx, data)
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

// EncodeFor is the non-generic form of Encode for callers that only hold a
// reflect.Type at runtime.
func EncodeFor(ctx context.Context, t reflect.Type, v any) (any, error) {
	s, err := SerializerFor(t)
	if err != nil {
		return nil, err
	}
	return s.Serialize(ctx, v)
}

// DecodeFor is the non-generic form of Decode.
func DecodeFor(ctx context.Context, t reflect.Type, data any) (any, error) {
	d, err := DeserializerFor(t)
	if err != nil {
		return nil, err
	}
	return d.Deserialize(ctx, data)
}
