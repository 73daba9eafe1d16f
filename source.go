package jsonbind

import (
	"context"
	"io"
	"reflect"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source abstracts over polymorphic inputs. A Source produces a single JSON
// value tree; the typed engine consumes the tree regardless of where it came
// from.
type Source interface {
	// ValueTree materializes the input as a JSON value tree. Numbers appear
	// as json.Number so integer targets can reject fractional input exactly.
	ValueTree() (any, error)
}

// JSONBytes wraps a JSON byte slice as a Source.
func JSONBytes(b []byte) Source { return jsonBytesSource{data: b} }

// JSONReader wraps an io.Reader carrying JSON text as a Source.
func JSONReader(r io.Reader) Source { return jsonReaderSource{r: r} }

// YAMLBytes wraps a YAML byte slice as a Source. The document is lowered to
// the JSON value-tree shape before typed parsing; non-string mapping keys are
// rejected.
func YAMLBytes(b []byte) Source { return yamlBytesSource{data: b} }

// ValueSource wraps an already-materialized value tree as a Source.
func ValueSource(v any) Source { return valueSource{v: v} }

// DecodeFrom parses a Source into a value of T.
func DecodeFrom[T any](ctx context.Context, src Source) (T, error) {
	var zero T
	tree, err := src.ValueTree()
	if err != nil {
		return zero, err
	}
	return Decode[T](ctx, tree)
}

// DecodeFromFor is the non-generic form of DecodeFrom.
func DecodeFromFor(ctx context.Context, t reflect.Type, src Source) (any, error) {
	tree, err := src.ValueTree()
	if err != nil {
		return nil, err
	}
	return DecodeFor(ctx, t, tree)
}

type jsonBytesSource struct{ data []byte }

func (s jsonBytesSource) ValueTree() (any, error) {
	return decodeJSONTree(s.data)
}

type jsonReaderSource struct{ r io.Reader }

func (s jsonReaderSource) ValueTree() (any, error) {
	dec := gojson.NewDecoder(s.r)
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return tree, nil
}

type yamlBytesSource struct{ data []byte }

func (s yamlBytesSource) ValueTree() (any, error) {
	var doc any
	if err := yaml.Unmarshal(s.data, &doc); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return yamlToTree(doc)
}

type valueSource struct{ v any }

func (s valueSource) ValueTree() (any, error) { return s.v, nil }

var _ Source = jsonBytesSource{}
var _ Source = jsonReaderSource{}
var _ Source = yamlBytesSource{}
var _ Source = valueSource{}
