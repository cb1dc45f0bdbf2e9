package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/casino/internal/blackjack"
	"github.com/lox/casino/internal/ledger"
	"github.com/lox/casino/internal/randutil"
	"github.com/lox/casino/internal/store"
)

// SimulateCmd auto-plays blackjack rounds against throwaway ledgers to
// measure how the table's rules treat the player over many rounds.
type SimulateCmd struct {
	Rounds  int `help:"Rounds to play" default:"10000"`
	Workers int `help:"Parallel workers" default:"4"`
}

// Run plays the rounds across workers and prints the tally
func (c *SimulateCmd) Run(app *App) error {
	if c.Rounds <= 0 || c.Workers <= 0 {
		return fmt.Errorf("rounds and workers must be positive")
	}

	wager := app.cfg.Blackjack.Wager

	var mu sync.Mutex
	outcomes := make(map[blackjack.Outcome]int)
	var net int64

	var g errgroup.Group
	for w := 0; w < c.Workers; w++ {
		seed := app.seed + int64(w)
		rounds := c.Rounds / c.Workers
		if w < c.Rounds%c.Workers {
			rounds++
		}

		g.Go(func() error {
			localOutcomes, localNet, err := playRounds(seed, rounds, wager)
			if err != nil {
				return err
			}

			mu.Lock()
			for outcome, count := range localOutcomes {
				outcomes[outcome] += count
			}
			net += localNet
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	staked := int64(c.Rounds) * wager
	fmt.Printf("Played %d rounds at %d chips each\n\n", c.Rounds, wager)
	fmt.Printf("  Player wins: %d\n", outcomes[blackjack.PlayerWin])
	fmt.Printf("  Blackjacks:  %d\n", outcomes[blackjack.PlayerBlackjack])
	fmt.Printf("  Dealer wins: %d\n", outcomes[blackjack.DealerWin])
	fmt.Printf("  Pushes:      %d\n\n", outcomes[blackjack.Push])
	fmt.Printf("  Net chips:   %+d (house take %.2f%%)\n", net, float64(-net)/float64(staked)*100)
	return nil
}

// playRounds plays n rounds on a fresh in-memory ledger using a
// stand-on-17 player policy, returning the outcome counts and the
// player's net chip movement.
func playRounds(seed int64, n int, wager int64) (map[blackjack.Outcome]int, int64, error) {
	// Deep enough bankroll that the entry guard never trips
	bankroll := int64(n+1) * wager
	chips, err := ledger.Open(store.NewMemoryStoreWithBalance(bankroll))
	if err != nil {
		return nil, 0, err
	}

	round := blackjack.NewRound(randutil.New(seed), chips, log.New(io.Discard),
		blackjack.WithWager(wager),
		blackjack.WithThinkDelay(0))

	outcomes := make(map[blackjack.Outcome]int)
	for i := 0; i < n; i++ {
		if err := round.Start(); err != nil {
			return nil, 0, err
		}

		for round.State() == blackjack.InProgress {
			if round.CanAct() {
				if round.PlayerValue() >= 17 {
					round.Stand()
				} else {
					round.Hit()
				}
			}
			if err := round.Tick(); err != nil {
				return nil, 0, err
			}
		}
		outcomes[round.Outcome()]++
	}

	return outcomes, chips.Balance() - bankroll, nil
}
