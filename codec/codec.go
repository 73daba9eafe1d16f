// Package codec provides small bidirectional converters between wire
// representations and domain representations, layered on top of the jsonbind
// error model.
package codec

import "context"

// Codec performs bidirectional transformation between the wire representation
// A and the domain representation B. Decode and Encode are inverses for
// values either side accepts.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error) // wire -> domain
	Encode(ctx context.Context, b B) (A, error) // domain -> wire
}
