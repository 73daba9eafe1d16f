package jsonbind

import "reflect"

// TypeKind is the structural classification of a Go type. Classification is
// total and exclusive: every supported type maps to exactly one kind, and
// unsupported types are rejected when a codec is constructed, never at value
// time.
type TypeKind int

const (
	KindBool TypeKind = iota
	KindInt
	KindFloat
	KindString
	KindBytes
	KindTimestamp
	KindDate
	KindTimeOfDay
	KindUUID
	KindOptional
	KindList
	KindMap
	KindSet
	KindTuple
	KindUnion
	KindLiteral
	KindEnum
	KindRecord
	KindCustom
)

// String returns the lower-case name of the kind, used in issue params.
func (k TypeKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTimestamp:
		return "timestamp"
	case KindDate:
		return "date"
	case KindTimeOfDay:
		return "time"
	case KindUUID:
		return "uuid"
	case KindOptional:
		return "optional"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	case KindLiteral:
		return "literal"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// TypeDescriptor is the structural description of a type extracted by
// Classify. It stays shallow on purpose: parts are reflect.Types, not nested
// descriptors, so self-referential records do not blow up construction.
type TypeDescriptor struct {
	Kind TypeKind
	Type reflect.Type

	// Elem is the element type for Optional/List/Set and the value type for
	// Map.
	Elem reflect.Type
	// Key is the Map key type.
	Key reflect.Type
	// Items lists Tuple item types or Union alternatives, in declared order.
	Items []reflect.Type
	// Values lists the declared members of a Literal or Enum type.
	Values []any

	// CustomMarshal and CustomUnmarshal record which conversion hooks the
	// type implements. Either one suppresses structural handling for its
	// direction.
	CustomMarshal   bool
	CustomUnmarshal bool
}

// Requiredness expresses how a record field is satisfied when its property is
// absent from the input.
type Requiredness int

const (
	Required Requiredness = iota
	OptionalNullable
	DefaultValue
	DefaultFactory
)

// FieldDescriptor is the field plan entry for one record field.
type FieldDescriptor struct {
	// Name is the Go field name; Key is the external property name after
	// alias resolution.
	Name string
	Key  string
	// Index is the struct field index used for reflective access.
	Index int

	// Type is the declared field type. ValueType is the type the field's
	// codec is built for: one pointer layer is stripped when the field is
	// optional without a default, so the inner codec only ever sees a
	// present value.
	Type      reflect.Type
	ValueType reflect.Type

	Requiredness Requiredness
	// Default holds the declared default value (may be nil even on a
	// non-optional field; a default always wins over bare-optional).
	Default any
	// Factory produces the default when Requiredness is DefaultFactory.
	Factory func() any

	// Optional records whether the declared type is a pointer.
	Optional bool

	// Metadata carries opaque constraint markers (min, max, minlen, maxlen,
	// pattern, precision) for an external validator. This package never
	// enforces them.
	Metadata map[string]string
}
