package codec

import (
	"context"

	"github.com/google/uuid"

	jsonbind "github.com/reoring/jsonbind"
)

// UUIDString returns a Codec between canonical UUID strings and uuid.UUID
// values.
func UUIDString() Codec[string, uuid.UUID] {
	return uuidCodec{}
}

type uuidCodec struct{}

func (uuidCodec) Decode(ctx context.Context, a string) (uuid.UUID, error) {
	id, err := uuid.Parse(a)
	if err != nil {
		return uuid.UUID{}, jsonbind.Issues{{Path: "/", Code: jsonbind.CodeInvalidFormat, Message: "invalid UUID string", Cause: err}}
	}
	return id, nil
}

func (uuidCodec) Encode(ctx context.Context, b uuid.UUID) (string, error) {
	return b.String(), nil
}
