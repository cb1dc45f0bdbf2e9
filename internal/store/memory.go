package store

import "sync"

// MemoryStore is an in-process Store for tests and throwaway sessions.
type MemoryStore struct {
	mu      sync.Mutex
	balance int64
	exists  bool

	// SaveErr, when set, is returned by every Save. Lets tests exercise
	// persistence failures.
	SaveErr error
}

// NewMemoryStore returns an empty store with no prior record.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithBalance returns a store that already holds a record.
func NewMemoryStoreWithBalance(balance int64) *MemoryStore {
	return &MemoryStore{balance: balance, exists: true}
}

// Load implements ledger.Store.
func (m *MemoryStore) Load() (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance, m.exists, nil
}

// Save implements ledger.Store.
func (m *MemoryStore) Save(balance int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.balance = balance
	m.exists = true
	return nil
}
