package jsonbind

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/reoring/jsonbind/i18n"
)

// deserializerNode parses one JSON value-tree node into a value of its
// associated type, validating shape along the way. Nodes are immutable once
// published.
type deserializerNode interface {
	decode(ctx context.Context, data any) (reflect.Value, error)
}

// Deserializer parses JSON value trees into values of one Go type. Build one
// with DeserializerFor and apply it to any number of inputs; it is safe for
// concurrent use.
type Deserializer struct {
	typ  reflect.Type
	node deserializerNode
}

// Type returns the type the deserializer was built for.
func (d *Deserializer) Type() reflect.Type { return d.typ }

// Deserialize parses a JSON value tree into a value of the target type.
func (d *Deserializer) Deserialize(ctx context.Context, data any) (any, error) {
	rv, err := d.node.decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

// deserializerCache mirrors serializerCache: reflect.Type to published node,
// process lifetime, benign construction races.
var deserializerCache sync.Map

// DeserializerFor builds (or fetches) the deserializer for a type.
func DeserializerFor(t reflect.Type) (*Deserializer, error) {
	n, err := deserializerNodeFor(t)
	if err != nil {
		return nil, err
	}
	return &Deserializer{typ: t, node: n}, nil
}

func deserializerNodeFor(t reflect.Type) (deserializerNode, error) {
	if cached, ok := deserializerCache.Load(t); ok {
		return cached.(deserializerNode), nil
	}
	var (
		wg   sync.WaitGroup
		node deserializerNode
		err  error
	)
	wg.Add(1)
	fwd := &forwardDeserializer{resolve: func() (deserializerNode, error) {
		wg.Wait()
		return node, err
	}}
	if prior, loaded := deserializerCache.LoadOrStore(t, deserializerNode(fwd)); loaded {
		return prior.(deserializerNode), nil
	}
	node, err = buildDeserializer(t)
	wg.Done()
	if err != nil {
		deserializerCache.Delete(t)
		return nil, err
	}
	deserializerCache.Store(t, node)
	return node, nil
}

type forwardDeserializer struct {
	resolve func() (deserializerNode, error)
}

func (f *forwardDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	n, err := f.resolve()
	if err != nil {
		return reflect.Value{}, err
	}
	return n.decode(ctx, data)
}

func buildDeserializer(t reflect.Type) (deserializerNode, error) {
	td, err := classify(t, hookUnmarshal)
	if err != nil {
		return nil, err
	}
	switch td.Kind {
	case KindCustom:
		return customDeserializer{typ: t}, nil
	case KindBool:
		return boolDeserializer{typ: t}, nil
	case KindInt:
		return intDeserializer{typ: t}, nil
	case KindFloat:
		return floatDeserializer{typ: t}, nil
	case KindString:
		return stringDeserializer{typ: t}, nil
	case KindBytes:
		return bytesDeserializer{typ: t}, nil
	case KindTimestamp:
		return timestampDeserializer{}, nil
	case KindDate:
		return dateDeserializer{}, nil
	case KindTimeOfDay:
		return timeOfDayDeserializer{}, nil
	case KindUUID:
		return uuidDeserializer{}, nil
	case KindEnum:
		ms, _ := enumSetOf(t)
		return enumDeserializer{typ: t, members: ms}, nil
	case KindLiteral:
		ms, _ := literalSetOf(t)
		return literalDeserializer{typ: t, members: ms}, nil
	case KindOptional:
		elem, err := deserializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return optionalDeserializer{typ: t, elem: elem}, nil
	case KindList:
		elem, err := deserializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return listDeserializer{typ: t, elem: elem}, nil
	case KindSet:
		elem, err := deserializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return setDeserializer{typ: t, elem: elem}, nil
	case KindMap:
		elem, err := deserializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		keyMembers, _ := mapKeyMembers(td.Key)
		return mapDeserializer{typ: t, keyType: td.Key, keyMembers: keyMembers, elem: elem}, nil
	case KindTuple:
		items := make([]deserializerNode, len(td.Items))
		for i, it := range td.Items {
			n, err := deserializerNodeFor(it)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return tupleDeserializer{typ: t, items: items, isArray: t.Kind() == reflect.Array}, nil
	case KindUnion:
		if !reflect.PointerTo(t).Implements(unionSetterGoType) {
			return nil, &UnsupportedTypeError{Type: t, Reason: "union type does not implement UnionSetter"}
		}
		nodes := make([]deserializerNode, len(td.Items))
		for i, alt := range td.Items {
			n, err := deserializerNodeFor(alt)
			if err != nil {
				return nil, err
			}
			nodes[i] = n
		}
		return unionDeserializer{typ: t, alts: td.Items, nodes: nodes}, nil
	case KindRecord:
		return buildRecordDeserializer(t)
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
}

// invalidTypeIssue reports a JSON-kind mismatch (shape-class).
func invalidTypeIssue(expected string, data any) Issues {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, nil),
		Hint:    "expected " + expected,
		Params:  map[string]any{"expected": expected, "got": jsonKindOf(data)},
	}}
}

// ---- scalar nodes ----

type boolDeserializer struct{ typ reflect.Type }

func (d boolDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	b, ok := data.(bool)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("boolean", data))
	}
	rv := reflect.New(d.typ).Elem()
	rv.SetBool(b)
	return rv, nil
}

type intDeserializer struct{ typ reflect.Type }

func (d intDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	n, ok := asInt(data)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("integer", data))
	}
	rv := reflect.New(d.typ).Elem()
	switch d.typ.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return reflect.Value{}, error(Issues{Issue{
				Path: "/", Code: CodeInvalidValue, Message: i18n.T(CodeInvalidValue, nil),
				Hint:   "integer out of range for " + d.typ.String(),
				Params: map[string]any{"got": n},
			}})
		}
		rv.SetUint(uint64(n))
	default:
		if rv.OverflowInt(n) {
			return reflect.Value{}, error(Issues{Issue{
				Path: "/", Code: CodeInvalidValue, Message: i18n.T(CodeInvalidValue, nil),
				Hint:   "integer out of range for " + d.typ.String(),
				Params: map[string]any{"got": n},
			}})
		}
		rv.SetInt(n)
	}
	return rv, nil
}

type floatDeserializer struct{ typ reflect.Type }

func (d floatDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	f, ok := asFloat(data)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("number", data))
	}
	rv := reflect.New(d.typ).Elem()
	rv.SetFloat(f)
	return rv, nil
}

type stringDeserializer struct{ typ reflect.Type }

func (d stringDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	s, ok := data.(string)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("string", data))
	}
	rv := reflect.New(d.typ).Elem()
	rv.SetString(s)
	return rv, nil
}

type bytesDeserializer struct{ typ reflect.Type }

func (d bytesDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	s, ok := data.(string)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("string", data))
	}
	b, err := ParseBytes(s)
	if err != nil {
		return reflect.Value{}, error(Issues{Issue{
			Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil),
			Hint: "standard base64 expected", Cause: err,
		}})
	}
	rv := reflect.New(d.typ).Elem()
	rv.SetBytes(b)
	return rv, nil
}

type timestampDeserializer struct{}

func (timestampDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	s, ok := data.(string)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("string", data))
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		if errors.Is(err, ErrMissingTimezone) {
			return reflect.Value{}, error(Issues{Issue{
				Path: "/", Code: CodeInvalidValue, Message: i18n.T(CodeInvalidValue, nil),
				Hint: "timestamp lacks explicit time zone designator", Cause: err,
			}})
		}
		return reflect.Value{}, error(Issues{Issue{
			Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil),
			Hint: "RFC3339 timestamp expected", Cause: err,
		}})
	}
	return reflect.ValueOf(t), nil
}

type dateDeserializer struct{}

func (dateDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	s, ok := data.(string)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("string", data))
	}
	d, err := ParseDate(s)
	if err != nil {
		return reflect.Value{}, error(Issues{Issue{
			Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil),
			Hint: "ISO 8601 date expected", Cause: err,
		}})
	}
	return reflect.ValueOf(d), nil
}

type timeOfDayDeserializer struct{}

func (timeOfDayDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	s, ok := data.(string)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("string", data))
	}
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return reflect.Value{}, error(Issues{Issue{
			Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil),
			Hint: "ISO 8601 time expected", Cause: err,
		}})
	}
	return reflect.ValueOf(t), nil
}

type uuidDeserializer struct{}

func (uuidDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	s, ok := data.(string)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("string", data))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return reflect.Value{}, error(Issues{Issue{
			Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil),
			Hint: "UUID string expected", Cause: err,
		}})
	}
	return reflect.ValueOf(id), nil
}

// enumDeserializer performs a strict member lookup on the underlying value.
// An unrecognized value is a semantic violation, never silently substituted.
type enumDeserializer struct {
	typ     reflect.Type
	members *memberSet
}

func (d enumDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	v, ok := underlyingFromData(d.members.kind, data)
	if ok {
		cv := reflect.ValueOf(v).Convert(d.typ)
		if d.members.contains(cv.Interface()) {
			return cv, nil
		}
	}
	return reflect.Value{}, error(Issues{Issue{
		Path: "/", Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil),
		Hint:   "not a declared member of " + d.typ.String(),
		Params: map[string]any{"got": data},
	}})
}

// literalDeserializer accepts exactly the declared member values. A mismatch
// is reported as a type-shape failure so that literal-tagged union
// alternatives can be discriminated by ordered trial.
type literalDeserializer struct {
	typ     reflect.Type
	members *memberSet
}

func (d literalDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	v, ok := underlyingFromData(d.members.kind, data)
	if ok {
		cv := reflect.ValueOf(v).Convert(d.typ)
		if d.members.contains(cv.Interface()) {
			return cv, nil
		}
	}
	return reflect.Value{}, error(Issues{Issue{
		Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil),
		Hint:   "literal value mismatch for " + d.typ.String(),
		Params: map[string]any{"got": data},
	}})
}

// underlyingFromData extracts a primitive of the given kind from a value-tree
// node, converted to the canonical Go representation for that kind group.
func underlyingFromData(kind reflect.Kind, data any) (any, bool) {
	switch kind {
	case reflect.Bool:
		b, ok := data.(bool)
		return b, ok
	case reflect.String:
		s, ok := data.(string)
		return s, ok
	case reflect.Float32, reflect.Float64:
		f, ok := asFloat(data)
		return f, ok
	default:
		n, ok := asInt(data)
		return n, ok
	}
}

// ---- composite nodes ----

type optionalDeserializer struct {
	typ  reflect.Type
	elem deserializerNode
}

func (d optionalDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	if data == nil {
		return reflect.Zero(d.typ), nil
	}
	v, err := d.elem.decode(ctx, data)
	if err != nil {
		return reflect.Value{}, err
	}
	p := reflect.New(d.typ.Elem())
	p.Elem().Set(v)
	return p, nil
}

type listDeserializer struct {
	typ  reflect.Type
	elem deserializerNode
}

func (d listDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	arr, ok := data.([]any)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("array", data))
	}
	out := reflect.MakeSlice(d.typ, len(arr), len(arr))
	for i, item := range arr {
		v, err := d.elem.decode(ctx, item)
		if err != nil {
			return reflect.Value{}, error(prefixIssues("/"+strconv.Itoa(i), err))
		}
		out.Index(i).Set(v)
	}
	return out, nil
}

type setDeserializer struct {
	typ  reflect.Type
	elem deserializerNode
}

func (d setDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	arr, ok := data.([]any)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("array", data))
	}
	out := reflect.MakeMapWithSize(d.typ, len(arr))
	member := reflect.Zero(emptyStructGoType)
	for i, item := range arr {
		v, err := d.elem.decode(ctx, item)
		if err != nil {
			return reflect.Value{}, error(prefixIssues("/"+strconv.Itoa(i), err))
		}
		out.SetMapIndex(v, member)
	}
	return out, nil
}

type mapDeserializer struct {
	typ        reflect.Type
	keyType    reflect.Type
	keyMembers *memberSet // nil for plain string keys
	elem       deserializerNode
}

func (d mapDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	src, ok := data.(map[string]any)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("object", data))
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := reflect.MakeMapWithSize(d.typ, len(src))
	for _, k := range keys {
		kv := reflect.ValueOf(k).Convert(d.keyType)
		if d.keyMembers != nil && !d.keyMembers.contains(kv.Interface()) {
			return reflect.Value{}, error(Issues{Issue{
				Path: "/" + k, Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil),
				Hint: "not a declared member of " + d.keyType.String(),
			}})
		}
		v, err := d.elem.decode(ctx, src[k])
		if err != nil {
			return reflect.Value{}, error(prefixIssues("/"+k, err))
		}
		out.SetMapIndex(kv, v)
	}
	return out, nil
}

type tupleDeserializer struct {
	typ     reflect.Type
	items   []deserializerNode
	isArray bool
}

func (d tupleDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	arr, ok := data.([]any)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("array", data))
	}
	if len(arr) != len(d.items) {
		// Arity mismatch is a value-class failure, distinct from a JSON-kind
		// mismatch; it is not swallowed during union trial.
		return reflect.Value{}, error(Issues{Issue{
			Path: "/", Code: CodeLengthMismatch, Message: i18n.T(CodeLengthMismatch, nil),
			Params: map[string]any{"expected": len(d.items), "got": len(arr)},
		}})
	}
	rv := reflect.New(d.typ).Elem()
	for i, n := range d.items {
		v, err := n.decode(ctx, arr[i])
		if err != nil {
			return reflect.Value{}, error(prefixIssues("/"+strconv.Itoa(i), err))
		}
		if d.isArray {
			rv.Index(i).Set(v)
		} else {
			rv.Field(i).Set(v)
		}
	}
	return rv, nil
}

// unionDeserializer tries each alternative in declared order. Only shape
// mismatches are swallowed; a semantic violation inside an alternative
// surfaces immediately. Resolution is order-sensitive and best-effort:
// with overlapping alternatives the first clean parse wins.
type unionDeserializer struct {
	typ   reflect.Type
	alts  []reflect.Type
	nodes []deserializerNode
}

func (d unionDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	for _, n := range d.nodes {
		v, err := n.decode(ctx, data)
		if err == nil {
			np := reflect.New(d.typ)
			np.Interface().(UnionSetter).SetUnionValue(v.Interface())
			return np.Elem(), nil
		}
		if IsShapeMismatch(err) {
			continue
		}
		return reflect.Value{}, error(prefixIssues("/", err))
	}
	names := make([]string, len(d.alts))
	for i, alt := range d.alts {
		names[i] = alt.String()
	}
	return reflect.Value{}, error(Issues{Issue{
		Path: "/", Code: CodeUnionNoMatch, Message: i18n.T(CodeUnionNoMatch, nil),
		Hint:   "no alternative matched; tried in order",
		Params: map[string]any{"alternatives": names, "input": data},
	}})
}

type customDeserializer struct{ typ reflect.Type }

func (d customDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	np := reflect.New(d.typ)
	if err := np.Interface().(ValueUnmarshaler).UnmarshalValue(ctx, data); err != nil {
		return reflect.Value{}, error(prefixIssues("/", err))
	}
	return np.Elem(), nil
}

// ---- record node ----

type fieldDeserializer struct {
	key          string
	index        int
	requiredness Requiredness
	defaultValue any
	factory      func() any
	optional     bool
	valueType    reflect.Type
	node         deserializerNode
}

type recordDeserializer struct {
	typ    reflect.Type
	fields []fieldDeserializer
}

func buildRecordDeserializer(t reflect.Type) (deserializerNode, error) {
	plan, err := FieldsOf(t)
	if err != nil {
		return nil, err
	}
	fields := make([]fieldDeserializer, 0, len(plan))
	for _, fd := range plan {
		node, err := deserializerNodeFor(fd.ValueType)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fieldDeserializer{
			key:          fd.Key,
			index:        fd.Index,
			requiredness: fd.Requiredness,
			defaultValue: fd.Default,
			factory:      fd.Factory,
			optional:     fd.Optional,
			valueType:    fd.ValueType,
			node:         node,
		})
	}
	return recordDeserializer{typ: t, fields: fields}, nil
}

func (d recordDeserializer) decode(ctx context.Context, data any) (reflect.Value, error) {
	src, ok := data.(map[string]any)
	if !ok {
		return reflect.Value{}, error(invalidTypeIssue("object", data))
	}
	rv := reflect.New(d.typ).Elem()
	known := make(map[string]struct{}, len(d.fields))
	var iss Issues
	for _, f := range d.fields {
		known[f.key] = struct{}{}
		iss = AppendIssues(iss, f.parseInto(ctx, rv, src)...)
	}
	// Strict object parsing: every leftover property is reported, not just
	// the first offender.
	unknown := make([]string, 0)
	for k := range src {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		iss = AppendIssues(iss, Issue{
			Path: "/" + k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil),
		})
	}
	if len(iss) > 0 {
		return reflect.Value{}, iss
	}
	return rv, nil
}

// parseInto resolves one field from the input object into the record value,
// applying requiredness and defaults for absent or null properties.
func (f fieldDeserializer) parseInto(ctx context.Context, rv reflect.Value, src map[string]any) Issues {
	val, present := src[f.key]
	if present && (val != nil || f.requiredness == Required) {
		v, err := f.node.decode(ctx, val)
		if err != nil {
			return prefixIssues("/"+f.key, err)
		}
		f.assign(rv, v)
		return nil
	}

	switch f.requiredness {
	case Required:
		return Issues{Issue{
			Path: "/" + f.key, Code: CodeRequired, Message: i18n.T(CodeRequired, nil),
			Hint: "required property missing",
		}}
	case DefaultValue:
		if f.defaultValue == nil {
			return nil // explicit null default: leave the zero value
		}
		f.assign(rv, reflect.ValueOf(f.defaultValue))
	case DefaultFactory:
		dv := f.factory()
		if dv == nil {
			return nil
		}
		dvv := reflect.ValueOf(dv)
		if !dvv.Type().AssignableTo(f.valueType) {
			if !dvv.Type().ConvertibleTo(f.valueType) {
				return Issues{Issue{
					Path: "/" + f.key, Code: CodeInvalidValue, Message: i18n.T(CodeInvalidValue, nil),
					Hint: "default factory produced " + dvv.Type().String() + ", want " + f.valueType.String(),
				}}
			}
			dvv = dvv.Convert(f.valueType)
		}
		f.assign(rv, dvv)
	case OptionalNullable:
		// absent or null: leave the nil pointer
	}
	return nil
}

// assign stores a decoded value of the field's codec type, restoring the
// optional pointer layer when the declared type carries one.
func (f fieldDeserializer) assign(rv reflect.Value, v reflect.Value) {
	fv := rv.Field(f.index)
	if f.optional {
		p := reflect.New(f.valueType)
		p.Elem().Set(v)
		fv.Set(p)
		return
	}
	fv.Set(v)
}
