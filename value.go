package jsonbind

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// jsonKindOf names the JSON kind of a value-tree node for issue messages.
func jsonKindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// asInt extracts an integer from a value-tree node. JSON numbers written with
// a fraction or exponent are not integers, even when their value is integral.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case json.Number:
		s := n.String()
		if strings.ContainsAny(s, ".eE") {
			return 0, false
		}
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// asFloat extracts a floating-point number from a value-tree node. Integer
// nodes are accepted, mirroring JSON's single number kind.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// sortEncodedValues orders already-encoded set elements deterministically:
// scalars by natural order within their JSON kind, composites by their
// rendered form. Insertion order of the source set is never preserved.
func sortEncodedValues(items []any) {
	rank := func(v any) int {
		switch v.(type) {
		case nil:
			return 0
		case bool:
			return 1
		case string:
			return 3
		case []any:
			return 4
		case map[string]any:
			return 5
		default:
			return 2 // numbers
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra < rb
		}
		switch ra {
		case 1:
			return !a.(bool) && b.(bool)
		case 2:
			fa, _ := asFloat(a)
			fb, _ := asFloat(b)
			return fa < fb
		case 3:
			return a.(string) < b.(string)
		default:
			return fmt.Sprint(a) < fmt.Sprint(b)
		}
	})
}
