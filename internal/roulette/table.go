// Package roulette implements the casino's single-zero roulette table:
// chips placed on board spots, a uniform pocket draw, and settlement
// through the shared ledger.
package roulette

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/casino/internal/ledger"
)

var (
	// ErrInvalidSpot means a bet referenced a spot that isn't on the board
	ErrInvalidSpot = errors.New("roulette: invalid board spot")

	// ErrNoBets means a spin was requested with an empty board
	ErrNoBets = errors.New("roulette: no bets placed")

	// ErrInvalidAmount means a bet was placed for zero or negative chips
	ErrInvalidAmount = errors.New("roulette: bet amount must be positive")
)

// SpotKind distinguishes straight number bets from the even-money fields
type SpotKind int

const (
	KindStraight SpotKind = iota
	KindRed
	KindBlack
	KindOdd
	KindEven
	KindLow
	KindHigh
)

// Spot identifies a position on the betting board
type Spot struct {
	Kind   SpotKind
	Number int // set for straight bets only
}

// Straight returns the spot for a single number 0-36
func Straight(n int) Spot {
	return Spot{Kind: KindStraight, Number: n}
}

// Even-money board fields
var (
	Red   = Spot{Kind: KindRed}
	Black = Spot{Kind: KindBlack}
	Odd   = Spot{Kind: KindOdd}
	Even  = Spot{Kind: KindEven}
	Low   = Spot{Kind: KindLow}  // 1-18
	High  = Spot{Kind: KindHigh} // 19-36
)

// String returns the board label of a spot
func (s Spot) String() string {
	switch s.Kind {
	case KindStraight:
		return fmt.Sprintf("%d", s.Number)
	case KindRed:
		return "red"
	case KindBlack:
		return "black"
	case KindOdd:
		return "odd"
	case KindEven:
		return "even"
	case KindLow:
		return "low"
	case KindHigh:
		return "high"
	default:
		return "unknown"
	}
}

func (s Spot) valid() bool {
	if s.Kind == KindStraight {
		return s.Number >= 0 && s.Number <= 36
	}
	return s.Kind >= KindRed && s.Kind <= KindHigh
}

// redNumbers is the standard European wheel coloring
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// wins reports whether the spot pays for the drawn pocket. Zero loses
// every even-money field.
func (s Spot) wins(pocket int) bool {
	switch s.Kind {
	case KindStraight:
		return s.Number == pocket
	case KindRed:
		return redNumbers[pocket]
	case KindBlack:
		return pocket != 0 && !redNumbers[pocket]
	case KindOdd:
		return pocket%2 == 1
	case KindEven:
		return pocket != 0 && pocket%2 == 0
	case KindLow:
		return pocket >= 1 && pocket <= 18
	case KindHigh:
		return pocket >= 19 && pocket <= 36
	default:
		return false
	}
}

// payout returns the total credited for a winning bet of amount,
// stake included: straight bets pay 35:1, fields pay 1:1.
func (s Spot) payout(amount int64) int64 {
	if s.Kind == KindStraight {
		return amount * 36
	}
	return amount * 2
}

// Result summarises a completed spin
type Result struct {
	Pocket int
	Staked int64
	Won    int64
}

// Table is a roulette table sharing the casino's chip ledger. Bets are
// debited when placed and credited back either by clearing the spot
// before the spin or by winning it.
type Table struct {
	rng    *rand.Rand
	chips  *ledger.Ledger
	logger *log.Logger
	bets   map[Spot]int64
}

// NewTable creates a roulette table over the shared ledger
func NewTable(rng *rand.Rand, chips *ledger.Ledger, logger *log.Logger) *Table {
	return &Table{
		rng:    rng,
		chips:  chips,
		logger: logger.WithPrefix("roulette"),
		bets:   make(map[Spot]int64),
	}
}

// PlaceBet stakes chips on a spot, debiting them immediately
func (t *Table) PlaceBet(spot Spot, amount int64) error {
	if !spot.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSpot, spot)
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if err := t.chips.Debit(amount); err != nil {
		return fmt.Errorf("placing bet on %s: %w", spot, err)
	}
	t.bets[spot] += amount
	t.logger.Debug("bet placed", "spot", spot, "amount", amount, "total", t.bets[spot])
	return nil
}

// ClearSpot removes the chips staked on a spot and refunds them
func (t *Table) ClearSpot(spot Spot) error {
	staked, ok := t.bets[spot]
	if !ok {
		return nil
	}

	if err := t.chips.Credit(staked); err != nil {
		return fmt.Errorf("refunding %s: %w", spot, err)
	}
	delete(t.bets, spot)
	t.logger.Debug("spot cleared", "spot", spot, "refunded", staked)
	return nil
}

// Staked returns the chips currently riding on a spot
func (t *Table) Staked(spot Spot) int64 {
	return t.bets[spot]
}

// TotalStaked returns the chips riding on the whole board
func (t *Table) TotalStaked() int64 {
	var total int64
	for _, amount := range t.bets {
		total += amount
	}
	return total
}

// Spin draws a uniform pocket 0-36, settles every bet and clears the
// board. A spin with no bets is rejected.
func (t *Table) Spin() (Result, error) {
	if len(t.bets) == 0 {
		return Result{}, ErrNoBets
	}

	result := Result{
		Pocket: t.rng.IntN(37),
		Staked: t.TotalStaked(),
	}

	for spot, amount := range t.bets {
		if spot.wins(result.Pocket) {
			result.Won += spot.payout(amount)
		}
	}

	if result.Won > 0 {
		if err := t.chips.Credit(result.Won); err != nil {
			return Result{}, fmt.Errorf("settling spin: %w", err)
		}
	}

	t.bets = make(map[Spot]int64)
	t.logger.Info("spin settled", "pocket", result.Pocket, "staked", result.Staked, "won", result.Won)
	return result, nil
}
