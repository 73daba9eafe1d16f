package jsonbind

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/reoring/jsonbind/i18n"
)

// hookDirection narrows custom-hook detection to the direction a factory
// cares about: a type with only a serialize hook still gets structural
// deserialization, and vice versa.
type hookDirection int

const (
	hookEither hookDirection = iota
	hookMarshal
	hookUnmarshal
)

var (
	timestampGoType = reflect.TypeOf((*time.Time)(nil)).Elem()
	dateGoType      = reflect.TypeOf((*Date)(nil)).Elem()
	timeOfDayGoType = reflect.TypeOf((*TimeOfDay)(nil)).Elem()
	uuidGoType      = reflect.TypeOf((*uuid.UUID)(nil)).Elem()

	marshalerGoType   = reflect.TypeOf((*ValueMarshaler)(nil)).Elem()
	unmarshalerGoType = reflect.TypeOf((*ValueUnmarshaler)(nil)).Elem()
	unionGoType       = reflect.TypeOf((*Union)(nil)).Elem()
	unionSetterGoType = reflect.TypeOf((*UnionSetter)(nil)).Elem()
	tupleGoType       = reflect.TypeOf((*tupleType)(nil)).Elem()
	emptyStructGoType = reflect.TypeOf((*struct{})(nil)).Elem()
	byteGoType        = reflect.TypeOf((*byte)(nil)).Elem()
)

// Classify maps a Go type onto its structural TypeDescriptor. Classification
// is total and exclusive; types that cannot be represented (functions,
// channels, bare interfaces, complex numbers) yield an UnsupportedTypeError.
func Classify(t reflect.Type) (TypeDescriptor, error) {
	return classify(t, hookEither)
}

func classify(t reflect.Type, dir hookDirection) (TypeDescriptor, error) {
	if t == nil {
		return TypeDescriptor{}, &UnsupportedTypeError{Type: t, Reason: "nil type"}
	}

	// Optional wrapping is unwrapped by the caller one layer at a time, so a
	// pointer always classifies as Optional before anything else.
	if t.Kind() == reflect.Pointer {
		return TypeDescriptor{Kind: KindOptional, Type: t, Elem: t.Elem()}, nil
	}

	// Custom conversion wins over structural inference.
	cm := t.Implements(marshalerGoType) || reflect.PointerTo(t).Implements(marshalerGoType)
	cu := reflect.PointerTo(t).Implements(unmarshalerGoType)
	custom := TypeDescriptor{Kind: KindCustom, Type: t, CustomMarshal: cm, CustomUnmarshal: cu}
	switch dir {
	case hookEither:
		if cm || cu {
			return custom, nil
		}
	case hookMarshal:
		if cm {
			return custom, nil
		}
	case hookUnmarshal:
		if cu {
			return custom, nil
		}
	}

	// Well-known scalar types beat their structural shape (time.Time and
	// Date are structs, uuid.UUID is a byte array).
	switch t {
	case timestampGoType:
		return TypeDescriptor{Kind: KindTimestamp, Type: t}, nil
	case dateGoType:
		return TypeDescriptor{Kind: KindDate, Type: t}, nil
	case timeOfDayGoType:
		return TypeDescriptor{Kind: KindTimeOfDay, Type: t}, nil
	case uuidGoType:
		return TypeDescriptor{Kind: KindUUID, Type: t}, nil
	}

	// Tagged unions and tuple wrappers beat plain record classification.
	if t.Implements(unionGoType) || reflect.PointerTo(t).Implements(unionSetterGoType) {
		alts := unionAlternatives(t)
		if len(alts) == 0 {
			return TypeDescriptor{}, &UnsupportedTypeError{Type: t, Reason: "union declares no alternatives"}
		}
		return TypeDescriptor{Kind: KindUnion, Type: t, Items: alts}, nil
	}
	if t.Implements(tupleGoType) {
		items := reflect.New(t).Elem().Interface().(tupleType).tupleItems()
		return TypeDescriptor{Kind: KindTuple, Type: t, Items: items}, nil
	}

	// Registered enumerations and literal sets beat raw primitive kinds.
	if ms, ok := enumSetOf(t); ok {
		return TypeDescriptor{Kind: KindEnum, Type: t, Values: ms.members}, nil
	}
	if ms, ok := literalSetOf(t); ok {
		return TypeDescriptor{Kind: KindLiteral, Type: t, Values: ms.members}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return TypeDescriptor{Kind: KindBool, Type: t}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeDescriptor{Kind: KindInt, Type: t}, nil
	case reflect.Float32, reflect.Float64:
		return TypeDescriptor{Kind: KindFloat, Type: t}, nil
	case reflect.String:
		return TypeDescriptor{Kind: KindString, Type: t}, nil
	case reflect.Slice:
		if t.Elem() == byteGoType {
			return TypeDescriptor{Kind: KindBytes, Type: t}, nil
		}
		return TypeDescriptor{Kind: KindList, Type: t, Elem: t.Elem()}, nil
	case reflect.Array:
		// Fixed-arity homogeneous tuple.
		items := make([]reflect.Type, t.Len())
		for i := range items {
			items[i] = t.Elem()
		}
		return TypeDescriptor{Kind: KindTuple, Type: t, Elem: t.Elem(), Items: items}, nil
	case reflect.Map:
		if t.Elem() == emptyStructGoType {
			return TypeDescriptor{Kind: KindSet, Type: t, Elem: t.Key()}, nil
		}
		if err := checkMapKeyType(t); err != nil {
			return TypeDescriptor{}, err
		}
		return TypeDescriptor{Kind: KindMap, Type: t, Key: t.Key(), Elem: t.Elem()}, nil
	case reflect.Struct:
		return TypeDescriptor{Kind: KindRecord, Type: t}, nil
	default:
		return TypeDescriptor{}, &UnsupportedTypeError{Type: t, Reason: "cannot be represented as a JSON value"}
	}
}

// checkMapKeyType enforces the map-key restriction at construction time:
// keys must be strings or string-valued member sets (enumeration or literal).
func checkMapKeyType(t reflect.Type) error {
	k := t.Key()
	if ms, ok := mapKeyMembers(k); ok {
		if ms.kind != reflect.String {
			return &UnsupportedTypeError{Type: t, Reason: "member-set map keys must have string values"}
		}
		return nil
	}
	if k.Kind() == reflect.String {
		return nil
	}
	return &UnsupportedTypeError{Type: t, Reason: "map keys must be strings or string-valued enumerations"}
}

// mapKeyMembers resolves the member set constraining a map key type, if the
// type is registered as an enumeration or a literal set.
func mapKeyMembers(k reflect.Type) (*memberSet, bool) {
	if ms, ok := enumSetOf(k); ok {
		return ms, true
	}
	return literalSetOf(k)
}

// unionAlternatives extracts the ordered alternative list from a union type.
func unionAlternatives(t reflect.Type) []reflect.Type {
	var u Union
	if t.Implements(unionGoType) {
		u = reflect.New(t).Elem().Interface().(Union)
	} else {
		u = reflect.New(t).Interface().(Union)
	}
	return u.UnionAlternatives()
}

// UnwrapOptional strips one layer of optional wrapping, reporting whether the
// type was optional at all.
func UnwrapOptional(t reflect.Type) (reflect.Type, bool) {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem(), true
	}
	return t, false
}

// FieldsOf builds the field plan for a record type: external property names
// resolved through alias tags, requiredness derived from pointer wrapping and
// declared defaults, and opaque constraint metadata carried through for an
// external validator. A duplicate external name is a construction error.
func FieldsOf(t reflect.Type) ([]FieldDescriptor, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: t, Reason: "record type expected"}
	}
	seen := make(map[string]struct{}, t.NumField())
	fields := make([]FieldDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		if _, dup := seen[key]; dup {
			return nil, Issues{Issue{
				Path:    "/" + key,
				Code:    CodeDuplicateKey,
				Message: i18n.T(CodeDuplicateKey, nil),
				Hint:    "external property names must be pairwise distinct within a record",
			}}
		}
		seen[key] = struct{}{}

		fd := FieldDescriptor{
			Name:  sf.Name,
			Key:   key,
			Index: i,
			Type:  sf.Type,
		}
		fd.ValueType, fd.Optional = UnwrapOptional(sf.Type)

		meta := structTagEntries(sf)
		defaultLit, hasDefault := meta["default"]
		delete(meta, "default")
		fd.Metadata = meta

		switch {
		case hasDefault:
			dv, err := parseDefaultLiteral(defaultLit, fd.ValueType)
			if err != nil {
				return nil, Issues{Issue{Path: "/" + key, Code: CodeInvalidValue, Message: err.Error(), Cause: err}}
			}
			fd.Requiredness = DefaultValue
			fd.Default = dv
		default:
			if factory, ok := fieldDefaultFactory(t, sf.Name); ok {
				fd.Requiredness = DefaultFactory
				fd.Factory = factory
			} else if fd.Optional {
				fd.Requiredness = OptionalNullable
			} else {
				fd.Requiredness = Required
			}
		}
		fields = append(fields, fd)
	}
	return fields, nil
}
