package journal

import (
	"encoding/json"
	"time"
)

// Version is the current receipt format version.
// Increment when making breaking changes to the receipt structure.
const Version = 1

// Outcome values for a receipt.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Receipt is the persisted record of one intent dispatch.
type Receipt struct {
	// Metadata
	Version   int       `json:"version"`
	PerformID string    `json:"perform_id"`
	Seq       int       `json:"seq"`
	Timestamp time.Time `json:"timestamp"`

	// Dispatch outcome
	IntentKind string  `json:"intent_kind"`
	Outcome    string  `json:"outcome"`
	Error      string  `json:"error,omitempty"`
	DurationMs float64 `json:"duration_ms"`
}

// New creates a receipt for a successful dispatch.
func New(performID string, seq int, intentKind string, durationMs float64) *Receipt {
	return &Receipt{
		Version:    Version,
		PerformID:  performID,
		Seq:        seq,
		Timestamp:  time.Now().UTC(),
		IntentKind: intentKind,
		Outcome:    OutcomeOK,
		DurationMs: durationMs,
	}
}

// WithError marks the receipt as failed with the given error text.
func (r *Receipt) WithError(errText string) *Receipt {
	r.Outcome = OutcomeError
	r.Error = errText
	return r
}

// Marshal serializes a receipt to JSON.
func (r *Receipt) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a receipt from JSON.
func Unmarshal(data []byte) (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
