package journal

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory receipt store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[int]storedReceipt // performID -> seq -> receipt
	closed bool
}

// storedReceipt holds receipt data with metadata for List().
type storedReceipt struct {
	data      []byte
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory receipt store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[int]storedReceipt),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(performID string, seq int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.data[performID] == nil {
		m.data[performID] = make(map[int]storedReceipt)
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[performID][seq] = storedReceipt{
		data:      stored,
		timestamp: time.Now().UTC(),
	}

	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(performID string, seq int) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	perform, ok := m.data[performID]
	if !ok {
		return nil, ErrNotFound
	}

	r, ok := perform[seq]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification
	result := make([]byte, len(r.data))
	copy(result, r.data)
	return result, nil
}

// List implements Store.
func (m *MemoryStore) List(performID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	perform, ok := m.data[performID]
	if !ok {
		return nil, nil
	}

	infos := make([]Info, 0, len(perform))
	for seq, r := range perform {
		infos = append(infos, Info{
			PerformID: performID,
			Seq:       seq,
			Timestamp: r.timestamp,
			Size:      int64(len(r.data)),
		})
	}

	// Sort by sequence
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Seq < infos[j].Seq
	})

	return infos, nil
}

// DeletePerform implements Store.
func (m *MemoryStore) DeletePerform(performID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, performID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of receipts across all performs.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, perform := range m.data {
		count += len(perform)
	}
	return count
}
