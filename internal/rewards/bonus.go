// Package rewards hands out the free-chip grants that used to come from
// rewarded ads, rate-limited by a cooldown instead of an ad network.
package rewards

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/casino/internal/ledger"
)

// Grant sizing and pacing defaults
const (
	DefaultAmount   = 10
	DefaultCooldown = 30 * time.Second
)

// ErrCooldownActive means a claim came in before the cooldown elapsed
var ErrCooldownActive = errors.New("rewards: bonus cooldown active")

// Option configures a Bonus
type Option func(*Bonus)

// WithAmount sets the chips granted per claim
func WithAmount(amount int64) Option {
	return func(b *Bonus) { b.amount = amount }
}

// WithCooldown sets the minimum time between claims
func WithCooldown(d time.Duration) Option {
	return func(b *Bonus) { b.cooldown = d }
}

// WithClock injects the clock used to pace claims
func WithClock(clock quartz.Clock) Option {
	return func(b *Bonus) { b.clock = clock }
}

// Bonus grants free chips to the shared ledger at most once per cooldown
// window. The window is session-scoped, like the ad availability it
// replaces.
type Bonus struct {
	chips    *ledger.Ledger
	logger   *log.Logger
	clock    quartz.Clock
	amount   int64
	cooldown time.Duration
	nextAt   time.Time
}

// NewBonus creates a bonus dispenser over the shared ledger
func NewBonus(chips *ledger.Ledger, logger *log.Logger, opts ...Option) *Bonus {
	b := &Bonus{
		chips:    chips,
		logger:   logger.WithPrefix("rewards"),
		clock:    quartz.NewReal(),
		amount:   DefaultAmount,
		cooldown: DefaultCooldown,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Claim credits the grant and starts the cooldown. While the cooldown is
// running it fails with ErrCooldownActive and the remaining wait.
func (b *Bonus) Claim() (int64, error) {
	now := b.clock.Now()
	if now.Before(b.nextAt) {
		return 0, fmt.Errorf("%w: %s remaining", ErrCooldownActive, b.nextAt.Sub(now).Round(time.Second))
	}

	if err := b.chips.Credit(b.amount); err != nil {
		return 0, fmt.Errorf("granting bonus: %w", err)
	}

	b.nextAt = now.Add(b.cooldown)
	b.logger.Info("bonus granted", "amount", b.amount)
	return b.amount, nil
}

// Remaining returns how long until the next claim is allowed
func (b *Bonus) Remaining() time.Duration {
	remaining := b.nextAt.Sub(b.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}
