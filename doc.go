// Package jsonbind provides:
//
// - Type-driven codec construction: a reflect-based inspector classifies a Go
//   type once and two mirrored factories build reusable serializer and
//   deserializer trees for it (SerializerFor/DeserializerFor, Encode/Decode)
// - A stable error model via Issues (JSON Pointer, code, message) with an
//   explicit shape-mismatch vs semantic-violation split
// - Deterministic wire conventions: base64 bytes, RFC3339 timestamps with a
//   trailing Z for UTC, enumerations as their underlying value
// - Ordered, failure-tolerant union resolution over Union2/Union3/Union4
//
// Design policy:
// - Keep only public APIs in the root package; place standalone bidirectional
//   scalar codecs under codec/ and message translation under i18n/.
// - Codec construction is a pure function of the type; results are memoized
//   process-wide by reflect.Type and safe for concurrent use.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := jsonbind.Encode(ctx, event)          // typed value -> value tree
//	ev, err := jsonbind.Decode[Event](ctx, tree)   // value tree -> typed value
//	data, err := jsonbind.EncodeJSON(ctx, event)   // typed value -> JSON bytes
//	ev2, err := jsonbind.DecodeJSON[Event](ctx, data)
package jsonbind
