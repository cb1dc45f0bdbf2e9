package cards

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

var (
	// ErrInvalidDeck means a source card failed validation during Reset.
	// The deck is left untouched and no round may start.
	ErrInvalidDeck = errors.New("cards: invalid card in deck source")

	// ErrEmptyDeck means a draw was requested with no cards remaining.
	// Dealing limits make this unreachable in a two-hand blackjack round,
	// so callers treat it as an invariant violation rather than retrying.
	ErrEmptyDeck = errors.New("cards: no cards remaining")
)

// Deck holds the cards still in play for a round. Cards are drawn by
// uniform random selection over the remainder rather than a pre-shuffle,
// matching the original table behavior. Ownership of a drawn card
// transfers to the receiving hand.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates an empty deck drawing randomness from rng. Reset must be
// called before the first draw.
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
}

// Stacked returns a deck that yields exactly the given cards in order.
// Draws are sequential rather than random, letting tests script deals.
func Stacked(stack ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), stack...)}
}

// Reset replaces the deck contents with the given source set. Every card
// must be valid and unique and the set must be a complete 52; on any
// failure the deck is left exactly as it was.
func (d *Deck) Reset(source []Card) error {
	if len(source) != 52 {
		return fmt.Errorf("%w: expected 52 cards, got %d", ErrInvalidDeck, len(source))
	}

	seen := make(map[Card]bool, len(source))
	for _, c := range source {
		if !c.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidDeck, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidDeck, c)
		}
		seen[c] = true
	}

	d.cards = d.cards[:0]
	d.cards = append(d.cards, source...)
	return nil
}

// Draw removes and returns one uniformly random remaining card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	if d.rng == nil {
		card := d.cards[0]
		d.cards = d.cards[1:]
		return card, nil
	}

	i := d.rng.IntN(len(d.cards))
	card := d.cards[i]
	d.cards[i] = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
