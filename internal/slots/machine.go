// Package slots implements the casino's slot machine: a fixed pull cost
// and a weighted payout table settled through the shared ledger.
package slots

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/casino/internal/ledger"
)

// PullCost is the chips taken for every pull
const PullCost = 10

// Result describes the line a pull landed on
type Result struct {
	Line   string
	Payout int64
}

// Won reports whether the pull paid anything
func (r Result) Won() bool { return r.Payout > 0 }

// Machine is a slot machine over the shared chip ledger
type Machine struct {
	rng    *rand.Rand
	chips  *ledger.Ledger
	logger *log.Logger
}

// NewMachine creates a slot machine over the shared ledger
func NewMachine(rng *rand.Rand, chips *ledger.Ledger, logger *log.Logger) *Machine {
	return &Machine{
		rng:    rng,
		chips:  chips,
		logger: logger.WithPrefix("slots"),
	}
}

// Pull plays one spin: debits the pull cost, draws the outcome and
// credits any winnings. The debit failing (not enough chips) leaves the
// ledger untouched.
func (m *Machine) Pull() (Result, error) {
	if err := m.chips.Debit(PullCost); err != nil {
		return Result{}, fmt.Errorf("starting pull: %w", err)
	}

	result := spin(m.rng.IntN(100))

	if result.Payout > 0 {
		if err := m.chips.Credit(result.Payout); err != nil {
			return Result{}, fmt.Errorf("settling pull: %w", err)
		}
	}

	m.logger.Info("pull settled", "line", result.Line, "payout", result.Payout)
	return result, nil
}

// spin maps a uniform roll in [0,100) to a payout line. The weights and
// payouts are the machine's original table, skewed towards small wins,
// with the jackpot pinned to a single roll.
func spin(roll int) Result {
	switch {
	case roll == 69:
		return Result{Line: "three sevens", Payout: 1500}
	case roll < 5:
		return Result{Line: "three bars", Payout: 30}
	case roll < 15:
		return Result{Line: "three bells", Payout: 20}
	case roll < 25:
		return Result{Line: "three cherries", Payout: 20}
	case roll < 40:
		return Result{Line: "bar and seven", Payout: 5}
	case roll < 58:
		return Result{Line: "bar and bell", Payout: 3}
	case roll < 80:
		return Result{Line: "bar and cherry", Payout: 2}
	default:
		return Result{Line: "no match", Payout: 0}
	}
}
