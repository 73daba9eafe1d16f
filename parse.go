package jsonbind

import (
	"bytes"
	"context"
	"reflect"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// EncodeJSON serializes a typed value straight to JSON text.
func EncodeJSON[T any](ctx context.Context, v T) ([]byte, error) {
	tree, err := Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	out, err := gojson.Marshal(tree)
	if err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return out, nil
}

// DecodeJSON parses JSON text into a value of T. Numbers are decoded as
// json.Number so integer targets can reject fractional input exactly.
func DecodeJSON[T any](ctx context.Context, data []byte) (T, error) {
	var zero T
	tree, err := decodeJSONTree(data)
	if err != nil {
		return zero, err
	}
	return Decode[T](ctx, tree)
}

// DecodeJSONFor is the non-generic form of DecodeJSON.
func DecodeJSONFor(ctx context.Context, t reflect.Type, data []byte) (any, error) {
	tree, err := decodeJSONTree(data)
	if err != nil {
		return nil, err
	}
	return DecodeFor(ctx, t, tree)
}

func decodeJSONTree(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return tree, nil
}

// DecodeYAML parses YAML text into a value of T by lowering the YAML document
// to a JSON-shaped value tree first. Mapping keys must be strings; anything
// else is rejected before typed parsing begins.
func DecodeYAML[T any](ctx context.Context, data []byte) (T, error) {
	var zero T
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zero, error(singleIssue(CodeParseError, err.Error()))
	}
	tree, err := yamlToTree(doc)
	if err != nil {
		return zero, err
	}
	return Decode[T](ctx, tree)
}

// yamlToTree normalizes a yaml.v3 document into the same value-tree shape the
// JSON decoder produces.
func yamlToTree(v any) (any, error) {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			nv, err := yamlToTree(item)
			if err != nil {
				return nil, prefixIssues("/"+k, err)
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			ks, ok := k.(string)
			if !ok {
				return nil, error(singleIssue(CodeInvalidKey, "mapping key is not a string"))
			}
			nv, err := yamlToTree(item)
			if err != nil {
				return nil, prefixIssues("/"+ks, err)
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			nv, err := yamlToTree(item)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
