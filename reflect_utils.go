package jsonbind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external property name.
// Priority: jsonbind:"name=..." > json tag name > field name; "-" disables
// the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("jsonbind"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
			if p == "-" {
				return "-"
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// structTagEntries splits a jsonbind tag into key/value entries, skipping the
// name alias which ResolveStructKey already consumed.
func structTagEntries(sf reflect.StructField) map[string]string {
	gt := sf.Tag.Get("jsonbind")
	if gt == "" {
		return nil
	}
	var out map[string]string
	for _, p := range strings.Split(gt, ",") {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" || strings.HasPrefix(p, "name=") {
			continue
		}
		k, v, found := strings.Cut(p, "=")
		if !found {
			v = ""
		}
		if out == nil {
			out = map[string]string{}
		}
		out[k] = v
	}
	return out
}

// parseDefaultLiteral converts a tag-supplied default literal into a value of
// the field's codec type. The literal "null" stands for an explicit nil
// default, which is legal even on non-optional fields.
func parseDefaultLiteral(lit string, t reflect.Type) (any, error) {
	if lit == "null" {
		return nil, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return nil, fmt.Errorf("invalid bool default %q for %s", lit, t)
		}
		return reflect.ValueOf(b).Convert(t).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer default %q for %s", lit, t)
		}
		rv := reflect.New(t).Elem()
		if rv.OverflowInt(n) {
			return nil, fmt.Errorf("integer default %q overflows %s", lit, t)
		}
		rv.SetInt(n)
		return rv.Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer default %q for %s", lit, t)
		}
		rv := reflect.New(t).Elem()
		if rv.OverflowUint(n) {
			return nil, fmt.Errorf("integer default %q overflows %s", lit, t)
		}
		rv.SetUint(n)
		return rv.Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float default %q for %s", lit, t)
		}
		rv := reflect.New(t).Elem()
		rv.SetFloat(f)
		return rv.Interface(), nil
	case reflect.String:
		return reflect.ValueOf(lit).Convert(t).Interface(), nil
	default:
		return nil, fmt.Errorf("default literals are limited to primitive fields, got %s", t)
	}
}
