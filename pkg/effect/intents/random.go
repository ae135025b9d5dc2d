package intents

import (
	"github.com/google/uuid"
	"github.com/intentkit/effect/pkg/effect"
)

// NewUUID is an intent to generate a random identifier.
// Its result is the UUID as a string.
//
// Random generation is effectful; describing it as an intent keeps code
// that names things deterministic under test.
type NewUUID struct{}

// DescribeIntent implements effect.Describer.
func (NewUUID) DescribeIntent() any {
	return map[string]any{"intent": "new_uuid"}
}

// performNewUUID is the default NewUUID handler.
func performNewUUID(_ effect.Context, _ NewUUID) (any, error) {
	return uuid.New().String(), nil
}
