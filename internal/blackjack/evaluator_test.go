package blackjack

import (
	"testing"

	"github.com/lox/casino/cards"
)

func hand(ranks ...cards.Rank) cards.Hand {
	h := make(cards.Hand, 0, len(ranks))
	suits := []cards.Suit{cards.Hearts, cards.Diamonds, cards.Spades, cards.Clovers}
	for i, r := range ranks {
		h = append(h, cards.NewCard(suits[i%len(suits)], r))
	}
	return h
}

func TestHandValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		hand cards.Hand
		want int
	}{
		{"empty hand", cards.Hand{}, 0},
		{"no aces sums face values", hand(cards.Two, cards.Nine), 11},
		{"face cards count ten", hand(cards.Jack, cards.Queen, cards.King), 30},
		{"lone ace is soft", hand(cards.Ace), 11},
		{"ace plus ten is blackjack", hand(cards.Ace, cards.King), 21},
		{"soft seventeen", hand(cards.Ace, cards.Six), 17},
		{"ace hardens to avoid bust", hand(cards.Ace, cards.Nine, cards.Five), 15},
		{"two aces one soft", hand(cards.Ace, cards.Ace), 12},
		{"two aces with nine", hand(cards.Ace, cards.Ace, cards.Nine), 21},
		{"all aces hard when soft busts", hand(cards.Ace, cards.Ace, cards.King, cards.Queen), 22},
		{"twenty-one across five cards", hand(cards.Two, cards.Three, cards.Four, cards.Five, cards.Seven), 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandValue(tt.hand); got != tt.want {
				t.Errorf("HandValue(%s) = %d, want %d", tt.hand, got, tt.want)
			}
		})
	}
}

func TestVisibleValueMasksHoleCards(t *testing.T) {
	t.Parallel()
	dealer := hand(cards.King, cards.Nine, cards.Four)

	if got := VisibleValue(dealer, false); got != 10 {
		t.Errorf("masked value = %d, want 10 (upcard only)", got)
	}
	if got := VisibleValue(dealer, true); got != 23 {
		t.Errorf("revealed value = %d, want 23", got)
	}

	// Masked value must match scoring just the first card, ace rules intact
	aceUp := hand(cards.Ace, cards.King)
	if got := VisibleValue(aceUp, false); got != 11 {
		t.Errorf("masked ace upcard = %d, want 11", got)
	}
}

func TestVisibleValueShortHands(t *testing.T) {
	t.Parallel()
	if got := VisibleValue(cards.Hand{}, false); got != 0 {
		t.Errorf("empty hand = %d, want 0", got)
	}
	if got := VisibleValue(hand(cards.Seven), false); got != 7 {
		t.Errorf("single card = %d, want 7", got)
	}
}

func TestIsBlackjack(t *testing.T) {
	t.Parallel()
	if !IsBlackjack(hand(cards.Ace, cards.King)) {
		t.Error("ace plus king should be blackjack")
	}
	if IsBlackjack(hand(cards.Seven, cards.Seven, cards.Seven)) {
		t.Error("three-card 21 is not a natural")
	}
	if IsBlackjack(hand(cards.King, cards.Nine)) {
		t.Error("19 is not a blackjack")
	}
}
