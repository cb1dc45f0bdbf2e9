// Package blackjack implements the round engine for the casino's
// blackjack table: hand scoring with soft/hard ace handling, the dealer
// policy, and the turn state machine that sequences a round from deal to
// settlement.
package blackjack

import "github.com/lox/casino/cards"

// Blackjack hand thresholds
const (
	blackjackTarget  = 21
	dealerStandsFrom = 17
)

// HandValue returns the best blackjack value of a hand. Non-ace ranks sum
// at face value; one ace counts as 11 when that doesn't bust the hand,
// every other ace counts as 1. An empty hand scores 0.
func HandValue(hand cards.Hand) int {
	return valueOf(hand, len(hand))
}

// VisibleValue returns the value of the hand as seen from across the
// table. When revealAll is false only the first card counts, modelling
// the dealer's face-down hole cards before showdown.
func VisibleValue(hand cards.Hand, revealAll bool) int {
	if revealAll || len(hand) <= 1 {
		return valueOf(hand, len(hand))
	}
	return valueOf(hand, 1)
}

// valueOf scores the first n cards of the hand.
func valueOf(hand cards.Hand, n int) int {
	total := 0
	aces := 0
	for _, c := range hand[:n] {
		if c.IsAce() {
			aces++
			continue
		}
		total += c.Rank.Points()
	}

	if aces == 0 {
		return total
	}

	// One ace may be soft; the rest always count as 1.
	if total+11+(aces-1) <= blackjackTarget {
		return total + 11 + (aces - 1)
	}
	return total + aces
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totalling 21.
func IsBlackjack(hand cards.Hand) bool {
	return len(hand) == 2 && HandValue(hand) == blackjackTarget
}
