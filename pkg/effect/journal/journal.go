// Package journal provides persistent storage for perform receipts.
//
// A receipt records one intent dispatch: which intent kind ran, under which
// perform, and how it came out. Receipts are an audit/debugging aid; the
// engine never reads them back during a perform.
package journal

import (
	"errors"
	"time"
)

// Store persists receipts. Implementations must be safe for concurrent use.
type Store interface {
	// Save stores receipt data for a perform at a specific sequence number.
	// Overwrites if a receipt for (performID, seq) already exists.
	Save(performID string, seq int, data []byte) error

	// Load retrieves receipt data.
	// Returns ErrNotFound if the receipt doesn't exist.
	Load(performID string, seq int) ([]byte, error)

	// List returns all receipts for a perform, ordered by sequence.
	// Returns empty slice (not error) if the perform has no receipts.
	List(performID string) ([]Info, error)

	// DeletePerform removes all receipts for a perform.
	// Returns nil if the perform has no receipts.
	DeletePerform(performID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides receipt metadata without loading the full record.
type Info struct {
	PerformID string
	Seq       int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates a receipt doesn't exist.
	ErrNotFound = errors.New("receipt not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
