package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/casino/internal/store"
)

func TestOpenDefaultsToZero(t *testing.T) {
	l, err := Open(store.NewMemoryStore())
	require.NoError(t, err)
	require.EqualValues(t, 0, l.Balance())
}

func TestOpenLoadsExistingBalance(t *testing.T) {
	l, err := Open(store.NewMemoryStoreWithBalance(250))
	require.NoError(t, err)
	require.EqualValues(t, 250, l.Balance())
}

func TestCreditPersists(t *testing.T) {
	s := store.NewMemoryStore()
	l, err := Open(s)
	require.NoError(t, err)

	require.NoError(t, l.Credit(100))
	require.EqualValues(t, 100, l.Balance())

	// A fresh ledger over the same store sees the new balance
	reloaded, err := Open(s)
	require.NoError(t, err)
	require.EqualValues(t, 100, reloaded.Balance())
}

func TestDebit(t *testing.T) {
	l, err := Open(store.NewMemoryStoreWithBalance(50))
	require.NoError(t, err)

	require.NoError(t, l.Debit(30))
	require.EqualValues(t, 20, l.Balance())
}

func TestDebitRejectsOverdraw(t *testing.T) {
	l, err := Open(store.NewMemoryStoreWithBalance(10))
	require.NoError(t, err)

	err = l.Debit(11)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.EqualValues(t, 10, l.Balance(), "failed debit must not change the balance")
}

func TestNegativeAmountsRejected(t *testing.T) {
	l, err := Open(store.NewMemoryStore())
	require.NoError(t, err)

	require.ErrorIs(t, l.Credit(-1), ErrNegativeAmount)
	require.ErrorIs(t, l.Debit(-1), ErrNegativeAmount)
}

func TestFailedSaveLeavesBalanceUntouched(t *testing.T) {
	s := store.NewMemoryStoreWithBalance(40)
	l, err := Open(s)
	require.NoError(t, err)

	s.SaveErr = errors.New("disk full")
	require.Error(t, l.Credit(10))
	require.EqualValues(t, 40, l.Balance())

	s.SaveErr = nil
	require.NoError(t, l.Credit(10))
	require.EqualValues(t, 50, l.Balance())
}
