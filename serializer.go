package jsonbind

import (
	"context"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reoring/jsonbind/i18n"
)

// serializerNode turns one value of its associated type into a JSON value
// tree. Nodes are immutable once published and composite nodes own their
// children exclusively; self-reference resolves through the shared cache.
type serializerNode interface {
	encode(ctx context.Context, rv reflect.Value) (any, error)
}

// Serializer converts values of one Go type into JSON value trees. Build one
// with SerializerFor and apply it to any number of values; it is safe for
// concurrent use.
type Serializer struct {
	typ  reflect.Type
	node serializerNode
}

// Type returns the type the serializer was built for.
func (s *Serializer) Type() reflect.Type { return s.typ }

// Serialize converts v into a JSON value tree (nil, bool, numbers, string,
// []any, map[string]any).
func (s *Serializer) Serialize(ctx context.Context, v any) (any, error) {
	if v == nil {
		if s.typ.Kind() == reflect.Pointer {
			return nil, nil
		}
		return nil, Issues{Issue{
			Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil),
			Hint:   "nil value for non-optional type " + s.typ.String(),
			Params: map[string]any{"expected": s.typ.String(), "got": "null"},
		}}
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != s.typ {
		if !rv.Type().AssignableTo(s.typ) {
			return nil, Issues{Issue{
				Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil),
				Params: map[string]any{"expected": s.typ.String(), "got": rv.Type().String()},
			}}
		}
	}
	return s.node.encode(ctx, rv)
}

// serializerCache maps reflect.Type to a published serializerNode. Entries
// live for the process lifetime; redundant concurrent builds race benignly
// and the loser adopts the winner's entry.
var serializerCache sync.Map

// SerializerFor builds (or fetches) the serializer for a type. Construction
// errors abort entirely; a partially usable codec is never produced.
func SerializerFor(t reflect.Type) (*Serializer, error) {
	n, err := serializerNodeFor(t)
	if err != nil {
		return nil, err
	}
	return &Serializer{typ: t, node: n}, nil
}

func serializerNodeFor(t reflect.Type) (serializerNode, error) {
	if cached, ok := serializerCache.Load(t); ok {
		return cached.(serializerNode), nil
	}
	// Publish a forward placeholder before recursing so a self-referential
	// record field resolves to the entry being built instead of recursing
	// without bound. The placeholder blocks until the parent completes.
	var (
		wg   sync.WaitGroup
		node serializerNode
		err  error
	)
	wg.Add(1)
	fwd := &forwardSerializer{resolve: func() (serializerNode, error) {
		wg.Wait()
		return node, err
	}}
	if prior, loaded := serializerCache.LoadOrStore(t, serializerNode(fwd)); loaded {
		return prior.(serializerNode), nil
	}
	node, err = buildSerializer(t)
	wg.Done()
	if err != nil {
		serializerCache.Delete(t)
		return nil, err
	}
	serializerCache.Store(t, node)
	return node, nil
}

type forwardSerializer struct {
	resolve func() (serializerNode, error)
}

func (f *forwardSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	n, err := f.resolve()
	if err != nil {
		return nil, err
	}
	return n.encode(ctx, rv)
}

func buildSerializer(t reflect.Type) (serializerNode, error) {
	td, err := classify(t, hookMarshal)
	if err != nil {
		return nil, err
	}
	switch td.Kind {
	case KindCustom:
		return customSerializer{}, nil
	case KindBool:
		return boolSerializer{}, nil
	case KindInt:
		return intSerializer{}, nil
	case KindFloat:
		return floatSerializer{}, nil
	case KindString:
		return stringSerializer{}, nil
	case KindBytes:
		return bytesSerializer{}, nil
	case KindTimestamp:
		return timestampSerializer{}, nil
	case KindDate:
		return dateSerializer{}, nil
	case KindTimeOfDay:
		return timeOfDaySerializer{}, nil
	case KindUUID:
		return uuidSerializer{}, nil
	case KindEnum, KindLiteral:
		// Both emit their declared underlying value, never a symbolic name.
		return underlyingValueSerializer{}, nil
	case KindOptional:
		elem, err := serializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return optionalSerializer{elem: elem}, nil
	case KindList:
		elem, err := serializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return listSerializer{elem: elem}, nil
	case KindSet:
		elem, err := serializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return setSerializer{elem: elem}, nil
	case KindMap:
		elem, err := serializerNodeFor(td.Elem)
		if err != nil {
			return nil, err
		}
		return mapSerializer{elem: elem}, nil
	case KindTuple:
		items := make([]serializerNode, len(td.Items))
		for i, it := range td.Items {
			n, err := serializerNodeFor(it)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return tupleSerializer{items: items, isArray: t.Kind() == reflect.Array}, nil
	case KindUnion:
		return unionSerializer{}, nil
	case KindRecord:
		return buildRecordSerializer(t)
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
}

// ---- scalar nodes ----

type boolSerializer struct{}

func (boolSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return rv.Bool(), nil
}

type intSerializer struct{}

func (intSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	default:
		return rv.Int(), nil
	}
}

type floatSerializer struct{}

func (floatSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return rv.Float(), nil
}

type stringSerializer struct{}

func (stringSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return rv.String(), nil
}

type bytesSerializer struct{}

func (bytesSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return FormatBytes(rv.Bytes()), nil
}

type timestampSerializer struct{}

func (timestampSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return FormatTimestamp(rv.Interface().(time.Time)), nil
}

type dateSerializer struct{}

func (dateSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return rv.Interface().(Date).String(), nil
}

type timeOfDaySerializer struct{}

func (timeOfDaySerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return rv.Interface().(TimeOfDay).String(), nil
}

type uuidSerializer struct{}

func (uuidSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	return rv.Interface().(uuid.UUID).String(), nil
}

// underlyingValueSerializer emits the declared underlying value of an
// enumeration or literal member.
type underlyingValueSerializer struct{}

func (underlyingValueSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return rv.Int(), nil
	}
}

// ---- composite nodes ----

type optionalSerializer struct{ elem serializerNode }

func (s optionalSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	if rv.IsNil() {
		return nil, nil
	}
	return s.elem.encode(ctx, rv.Elem())
}

type listSerializer struct{ elem serializerNode }

func (s listSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item, err := s.elem.encode(ctx, rv.Index(i))
		if err != nil {
			return nil, error(prefixIssues("/"+strconv.Itoa(i), err))
		}
		out[i] = item
	}
	return out, nil
}

// setSerializer renders a set as a deterministically ordered array; the
// order never reflects insertion order.
type setSerializer struct{ elem serializerNode }

func (s setSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	out := make([]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		item, err := s.elem.encode(ctx, iter.Key())
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	sortEncodedValues(out)
	return out, nil
}

type mapSerializer struct{ elem serializerNode }

func (s mapSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		// Keys are strings or string-valued member sets by construction.
		k := iter.Key().String()
		v, err := s.elem.encode(ctx, iter.Value())
		if err != nil {
			return nil, error(prefixIssues("/"+k, err))
		}
		out[k] = v
	}
	return out, nil
}

type tupleSerializer struct {
	items   []serializerNode
	isArray bool
}

func (s tupleSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	out := make([]any, len(s.items))
	for i, n := range s.items {
		var fv reflect.Value
		if s.isArray {
			fv = rv.Index(i)
		} else {
			fv = rv.Field(i)
		}
		item, err := n.encode(ctx, fv)
		if err != nil {
			return nil, error(prefixIssues("/"+strconv.Itoa(i), err))
		}
		out[i] = item
	}
	return out, nil
}

// unionSerializer does not know which alternative is active ahead of time,
// so it dispatches on the runtime value's concrete type at call time.
type unionSerializer struct{}

func (unionSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	u := asUnion(rv)
	inner := u.UnionValue()
	if inner == nil {
		// No active alternative: an explicit null here would not survive the
		// ordered trial on the way back in.
		return nil, error(Issues{Issue{
			Path: "/", Code: CodeInvalidValue, Message: i18n.T(CodeInvalidValue, nil),
			Hint: "union has no active alternative",
		}})
	}
	it := reflect.ValueOf(inner)
	node, err := serializerNodeFor(it.Type())
	if err != nil {
		return nil, err
	}
	return node.encode(ctx, it)
}

type customSerializer struct{}

func (customSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	m, ok := rv.Interface().(ValueMarshaler)
	if !ok {
		// Hook declared on the pointer receiver.
		np := reflect.New(rv.Type())
		np.Elem().Set(rv)
		m = np.Interface().(ValueMarshaler)
	}
	out, err := m.MarshalValue(ctx)
	if err != nil {
		return nil, error(prefixIssues("/", err))
	}
	return out, nil
}

// ---- record node ----

type fieldSerializer struct {
	key      string
	index    int
	optional bool
	node     serializerNode
}

type recordSerializer struct {
	fields []fieldSerializer
}

func buildRecordSerializer(t reflect.Type) (serializerNode, error) {
	plan, err := FieldsOf(t)
	if err != nil {
		return nil, err
	}
	fields := make([]fieldSerializer, 0, len(plan))
	for _, fd := range plan {
		node, err := serializerNodeFor(fd.ValueType)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fieldSerializer{
			key:      fd.Key,
			index:    fd.Index,
			optional: fd.Optional,
			node:     node,
		})
	}
	return recordSerializer{fields: fields}, nil
}

func (s recordSerializer) encode(ctx context.Context, rv reflect.Value) (any, error) {
	out := make(map[string]any, len(s.fields))
	var iss Issues
	for _, f := range s.fields {
		fv := rv.Field(f.index)
		if f.optional {
			// Null-valued fields are omitted entirely; absence is the wire
			// convention for "no value".
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		v, err := f.node.encode(ctx, fv)
		if err != nil {
			iss = AppendIssues(iss, prefixIssues("/"+f.key, err)...)
			continue
		}
		out[f.key] = v
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// asUnion extracts the Union view of a value regardless of which receiver
// carries the interface methods.
func asUnion(rv reflect.Value) Union {
	if u, ok := rv.Interface().(Union); ok {
		return u
	}
	np := reflect.New(rv.Type())
	np.Elem().Set(rv)
	return np.Interface().(Union)
}

