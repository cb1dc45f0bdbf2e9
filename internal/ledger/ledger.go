// Package ledger holds the player's chip balance shared by every game at
// the casino. Balances survive process restarts through a pluggable Store.
package ledger

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInsufficientFunds means a debit (or a round start) asked for more
	// chips than the player holds. Recoverable; the operation is a no-op.
	ErrInsufficientFunds = errors.New("ledger: insufficient chips")

	// ErrNegativeAmount means a credit or debit was called with a negative
	// amount. Amounts are always non-negative; direction is the method.
	ErrNegativeAmount = errors.New("ledger: amount must be non-negative")
)

// Store persists a chip balance. Load reports whether a prior record
// existed; a fresh store yields (0, false, nil). Save is synchronous —
// when it returns, the balance is durable.
type Store interface {
	Load() (int64, bool, error)
	Save(balance int64) error
}

// Ledger is the single chip balance for the session. All mutation goes
// through Credit/Debit, and every mutation is persisted before it is
// visible. Safe for concurrent use; games running on different goroutines
// share one instance.
type Ledger struct {
	mu      sync.Mutex
	balance int64
	store   Store
}

// Open loads the persisted balance from store, defaulting to 0 when no
// record exists.
func Open(store Store) (*Ledger, error) {
	balance, _, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading chip balance: %w", err)
	}
	return &Ledger{balance: balance, store: store}, nil
}

// Balance returns the current chip balance
func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Credit adds chips to the balance and persists the result.
func (l *Ledger) Credit(amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.apply(l.balance + amount)
}

// Debit removes chips from the balance and persists the result. Debits
// exceeding the balance are rejected outright, never clamped.
func (l *Ledger) Debit(amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if amount > l.balance {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, l.balance, amount)
	}
	return l.apply(l.balance - amount)
}

// apply persists the new balance before committing it in memory, so a
// failed save never leaves memory and disk disagreeing.
func (l *Ledger) apply(balance int64) error {
	if err := l.store.Save(balance); err != nil {
		return fmt.Errorf("persisting chip balance: %w", err)
	}
	l.balance = balance
	return nil
}
