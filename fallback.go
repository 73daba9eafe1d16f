package jsonbind

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AnyToValue converts an arbitrary Go value into a JSON value tree without
// building a cached codec. It is the permissive sibling of SerializerFor:
// unregistered named types fall back to their underlying representation and
// map keys are stringified instead of rejected. Use it for logging, debug
// output, and other places where best effort beats strictness.
func AnyToValue(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return anyValue(ctx, reflect.ValueOf(v))
}

func anyValue(ctx context.Context, rv reflect.Value) (any, error) {
	switch v := rv.Interface().(type) {
	case time.Time:
		return FormatTimestamp(v), nil
	case Date:
		return v.String(), nil
	case TimeOfDay:
		return v.String(), nil
	case uuid.UUID:
		return v.String(), nil
	case ValueMarshaler:
		return v.MarshalValue(ctx)
	}
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		if m, ok := rv.Addr().Interface().(ValueMarshaler); ok {
			return m.MarshalValue(ctx)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return anyValue(ctx, rv.Elem())
	case reflect.Slice:
		if rv.Type().Elem() == byteGoType {
			return FormatBytes(rv.Bytes()), nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := anyValue(ctx, rv.Index(i))
			if err != nil {
				return nil, prefixIssues("/"+strconv.Itoa(i), err)
			}
			out[i] = item
		}
		return out, nil
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := stringifyKey(iter.Key())
			item, err := anyValue(ctx, iter.Value())
			if err != nil {
				return nil, prefixIssues("/"+k, err)
			}
			out[k] = item
		}
		return out, nil
	case reflect.Struct:
		return anyStruct(ctx, rv)
	default:
		return nil, &UnsupportedTypeError{Type: rv.Type()}
	}
}

func anyStruct(ctx context.Context, rv reflect.Value) (any, error) {
	t := rv.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		item, err := anyValue(ctx, fv)
		if err != nil {
			return nil, prefixIssues("/"+key, err)
		}
		out[key] = item
	}
	return out, nil
}

func stringifyKey(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	default:
		return fmt.Sprint(k.Interface())
	}
}
