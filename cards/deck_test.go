package cards

import (
	"errors"
	"testing"

	"github.com/lox/casino/internal/randutil"
)

func TestDeckDrawsAllDistinct(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))
	if err := d.Reset(StandardSet()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		card, err := d.Draw()
		if err != nil {
			t.Fatalf("draw %d failed: %v", i+1, err)
		}
		if seen[card] {
			t.Errorf("card %s drawn twice", card)
		}
		seen[card] = true
	}

	if d.Remaining() != 0 {
		t.Errorf("expected empty deck, %d cards remain", d.Remaining())
	}

	// 53rd draw must fail
	if _, err := d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestDeckResetRejectsInvalidCard(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))

	source := StandardSet()
	source[13] = Card{} // unloaded card

	if err := d.Reset(source); !errors.Is(err, ErrInvalidDeck) {
		t.Fatalf("expected ErrInvalidDeck, got %v", err)
	}
	if d.Remaining() != 0 {
		t.Errorf("failed reset must not mutate the deck, %d cards present", d.Remaining())
	}
}

func TestDeckResetRejectsDuplicates(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))

	source := StandardSet()
	source[0] = source[1]

	if err := d.Reset(source); !errors.Is(err, ErrInvalidDeck) {
		t.Fatalf("expected ErrInvalidDeck, got %v", err)
	}
}

func TestDeckResetRejectsShortSet(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))
	if err := d.Reset(StandardSet()[:51]); !errors.Is(err, ErrInvalidDeck) {
		t.Fatalf("expected ErrInvalidDeck, got %v", err)
	}
}

func TestDeckResetAfterPartialRound(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(7))
	if err := d.Reset(StandardSet()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw failed: %v", err)
		}
	}

	if err := d.Reset(StandardSet()); err != nil {
		t.Fatalf("second Reset failed: %v", err)
	}
	if d.Remaining() != 52 {
		t.Errorf("expected 52 cards after reset, got %d", d.Remaining())
	}
}

func TestDeckDrawIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	if err := a.Reset(StandardSet()); err != nil {
		t.Fatal(err)
	}
	if err := b.Reset(StandardSet()); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 52; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("draw %d diverged: %s vs %s", i+1, ca, cb)
		}
	}
}
