package cards

import "fmt"

// Suit represents a card suit. The zero value is invalid, mirroring cards
// whose assets have not been resolved yet.
type Suit int

const (
	SuitInvalid Suit = iota
	Hearts
	Diamonds
	Spades
	Clovers
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clovers:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The zero value is invalid.
type Rank int

const (
	RankInvalid Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return fmt.Sprintf("%d", int(r))
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// Points returns the blackjack point value of the rank. Aces return 1; the
// soft-ace upgrade to 11 is the evaluator's job, not the card's.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 1
	case r >= Two && r <= Ten:
		return int(r)
	case r >= Jack && r <= King:
		return 10
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Valid reports whether both suit and rank are set. Invalid cards must
// never enter a round.
func (c Card) Valid() bool {
	return c.Suit >= Hearts && c.Suit <= Clovers && c.Rank >= Ace && c.Rank <= King
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// Hand is an ordered sequence of cards. Order matters only for the
// first-card visibility rule on dealer hands, never for hand value.
type Hand []Card

// String returns the cards joined with spaces (e.g., "A♠ K♥")
func (h Hand) String() string {
	s := ""
	for i, c := range h {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}

// StandardSet returns the canonical 52-card set in suit-major order.
func StandardSet() []Card {
	set := make([]Card, 0, 52)
	for suit := Hearts; suit <= Clovers; suit++ {
		for rank := Ace; rank <= King; rank++ {
			set = append(set, NewCard(suit, rank))
		}
	}
	return set
}
