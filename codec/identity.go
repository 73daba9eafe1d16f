package codec

import "context"

// Identity returns a Codec[T,T] that passes values through unchanged. It is
// useful as the neutral element when composing codecs conditionally.
func Identity[T any]() Codec[T, T] {
	return identityCodec[T]{}
}

type identityCodec[T any] struct{}

func (identityCodec[T]) Decode(ctx context.Context, a T) (T, error) { return a, nil }
func (identityCodec[T]) Encode(ctx context.Context, b T) (T, error) { return b, nil }

// Compose chains two codecs: wire A across B into domain C.
func Compose[A, B, C any](outer Codec[A, B], inner Codec[B, C]) Codec[A, C] {
	return composed[A, B, C]{outer: outer, inner: inner}
}

type composed[A, B, C any] struct {
	outer Codec[A, B]
	inner Codec[B, C]
}

func (c composed[A, B, C]) Decode(ctx context.Context, a A) (C, error) {
	var zero C
	b, err := c.outer.Decode(ctx, a)
	if err != nil {
		return zero, err
	}
	return c.inner.Decode(ctx, b)
}

func (c composed[A, B, C]) Encode(ctx context.Context, v C) (A, error) {
	var zero A
	b, err := c.inner.Encode(ctx, v)
	if err != nil {
		return zero, err
	}
	return c.outer.Encode(ctx, b)
}
