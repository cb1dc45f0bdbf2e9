package blackjack

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/casino/cards"
	"github.com/lox/casino/internal/ledger"
)

// State represents where a round is in its lifecycle
type State int

const (
	Idle State = iota
	InProgress
	Complete
)

// String returns the string representation of a round state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in_progress"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome tags a completed round
type Outcome int

const (
	OutcomeNone Outcome = iota
	PlayerWin
	DealerWin
	Push
	PlayerBlackjack
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player_win"
	case DealerWin:
		return "dealer_win"
	case Push:
		return "push"
	case PlayerBlackjack:
		return "blackjack"
	default:
		return "none"
	}
}

// DealerState drives when the dealer autoplays
type DealerState int

const (
	DealerWaiting DealerState = iota
	DealerEvaluating
	DealerStanding
	DealerBust
)

// String returns the string representation of a dealer state
func (ds DealerState) String() string {
	switch ds {
	case DealerWaiting:
		return "waiting_for_player"
	case DealerEvaluating:
		return "evaluating"
	case DealerStanding:
		return "standing"
	case DealerBust:
		return "bust"
	default:
		return "unknown"
	}
}

// Default table rules
const (
	DefaultWager      = 10
	DefaultThinkDelay = 2 * time.Second
)

// Option configures a Round
type Option func(*Round)

// WithWager sets the chips debited at round start. Wins pay 1:1, a
// natural blackjack pays 3:2, a push returns the wager.
func WithWager(wager int64) Option {
	return func(r *Round) { r.wager = wager }
}

// WithThinkDelay sets the pause between dealer decisions. Purely
// presentational; tests set it to zero.
func WithThinkDelay(d time.Duration) Option {
	return func(r *Round) { r.thinkDelay = d }
}

// WithClock injects the clock used to pace dealer decisions
func WithClock(clock quartz.Clock) Option {
	return func(r *Round) { r.clock = clock }
}

// WithSource overrides the card set the deck is rebuilt from at every
// round start. Used by tests to feed known invalid sets; defaults to the
// canonical 52 cards.
func WithSource(source []cards.Card) Option {
	return func(r *Round) { r.source = source }
}

// Round orchestrates one blackjack round end to end: dealing, player
// actions, dealer autoplay, terminal detection and chip settlement.
//
// A Round is owned by a single goroutine — the frame driver calls Tick
// once per step and the input layer calls Start/Hit/Stand between ticks.
// Only the ledger underneath is safe for concurrent use.
type Round struct {
	deck   *cards.Deck
	source []cards.Card
	chips  *ledger.Ledger
	logger *log.Logger
	clock  quartz.Clock

	player cards.Hand
	dealer cards.Hand

	state        State
	outcome      Outcome
	dealerState  DealerState
	standing     bool
	playerBust   bool
	revealDealer bool

	wager      int64
	thinkDelay time.Duration
	nextStepAt time.Time
}

// NewRound creates a round engine over the shared chip ledger. The rng
// feeds the deck's uniform draws.
func NewRound(rng *rand.Rand, chips *ledger.Ledger, logger *log.Logger, opts ...Option) *Round {
	r := &Round{
		deck:       cards.NewDeck(rng),
		source:     cards.StandardSet(),
		chips:      chips,
		logger:     logger.WithPrefix("blackjack"),
		clock:      quartz.NewReal(),
		wager:      DefaultWager,
		thinkDelay: DefaultThinkDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins a new round: validates and rebuilds the deck, debits the
// wager and deals two cards to the dealer then two to the player. Calling
// it while a round is in progress is a no-op. Nothing is mutated when the
// deck fails validation or the player cannot cover the wager.
func (r *Round) Start() error {
	if r.state == InProgress {
		return nil
	}

	if r.chips.Balance() <= 0 || r.chips.Balance() < r.wager {
		return fmt.Errorf("starting round: %w", ledger.ErrInsufficientFunds)
	}

	// All-or-nothing: the deck validates the full source set before any
	// state changes.
	if err := r.deck.Reset(r.source); err != nil {
		return fmt.Errorf("starting round: %w", err)
	}

	if err := r.chips.Debit(r.wager); err != nil {
		return fmt.Errorf("starting round: %w", err)
	}

	r.player = r.player[:0]
	r.dealer = r.dealer[:0]
	r.standing = false
	r.playerBust = false
	r.revealDealer = false
	r.outcome = OutcomeNone

	if err := r.deal(&r.dealer, 2); err != nil {
		return err
	}
	if err := r.deal(&r.player, 2); err != nil {
		return err
	}

	r.dealerState = DealerWaiting
	r.state = InProgress
	r.logger.Debug("round started",
		"wager", r.wager,
		"player", r.player.String(),
		"dealerUp", r.dealer[:1].String())
	return nil
}

// Hit draws one card into the player's hand. A no-op unless a round is in
// progress and the player may still act.
func (r *Round) Hit() {
	if !r.CanAct() {
		return
	}

	if err := r.deal(&r.player, 1); err != nil {
		r.logger.Error("hit failed", "error", err)
		return
	}
	r.logger.Debug("player hit", "hand", r.player.String(), "value", HandValue(r.player))
	r.wakeDealer()
}

// Stand marks the player as standing, handing the rest of the round to
// the dealer. A no-op unless a round is in progress and the player may
// still act.
func (r *Round) Stand() {
	if !r.CanAct() {
		return
	}

	r.standing = true
	r.logger.Debug("player stands", "value", HandValue(r.player))
	r.wakeDealer()
}

// wakeDealer advances the dealer out of WaitingForPlayer and schedules
// the first decision one think-delay out.
func (r *Round) wakeDealer() {
	if r.dealerState == DealerWaiting {
		r.dealerState = DealerEvaluating
		r.nextStepAt = r.clock.Now().Add(r.thinkDelay)
	}
}

// Tick runs one evaluation step. The surrounding driver calls it once per
// frame; all terminal detection and at most one dealer decision happen
// here. The returned error is only ever a settlement persistence failure —
// the round still completes.
func (r *Round) Tick() error {
	if r.state != InProgress {
		return nil
	}

	playerValue := HandValue(r.player)

	// Natural blackjack once the player stands on their first two cards
	if playerValue == blackjackTarget && len(r.player) == 2 && r.standing {
		return r.finish(PlayerBlackjack)
	}

	if playerValue > blackjackTarget {
		r.playerBust = true
	}

	// A player bust is a dealer win even when the dealer has also bust:
	// the house keeps the edge on a double bust. House rule, do not
	// "fix" the tie-break.
	if r.playerBust {
		return r.finish(DealerWin)
	}

	if r.standing && r.dealerState == DealerBust {
		return r.finish(PlayerWin)
	}

	if r.dealerState == DealerEvaluating && !r.clock.Now().Before(r.nextStepAt) {
		r.dealerStep()
	}

	if r.standing && !r.playerBust && r.dealerState == DealerStanding {
		dealerValue := HandValue(r.dealer)
		switch {
		case playerValue > dealerValue:
			return r.finish(PlayerWin)
		case dealerValue > playerValue:
			return r.finish(DealerWin)
		default:
			return r.finish(Push)
		}
	}

	return nil
}

// dealerStep runs a single dealer decision against the dealer's true
// (unmasked) hand value: stand on 17-21, bust over 21, otherwise hit.
func (r *Round) dealerStep() {
	value := HandValue(r.dealer)

	switch {
	case value >= dealerStandsFrom && value <= blackjackTarget:
		r.dealerState = DealerStanding
		r.logger.Debug("dealer stands", "value", value)

	case value > blackjackTarget:
		r.dealerState = DealerBust
		r.logger.Debug("dealer bust", "value", value)

	default:
		if err := r.deal(&r.dealer, 1); err != nil {
			r.logger.Error("dealer hit failed", "error", err)
			return
		}
		newValue := HandValue(r.dealer)
		r.logger.Debug("dealer hits", "value", newValue)

		if newValue > blackjackTarget {
			// Stay evaluating; the next step resolves to bust
		} else if !r.standing {
			r.dealerState = DealerWaiting
			return
		}
		r.nextStepAt = r.clock.Now().Add(r.thinkDelay)
	}
}

// finish moves the round to Complete, reveals the dealer's hole cards and
// settles the wager.
func (r *Round) finish(outcome Outcome) error {
	r.state = Complete
	r.outcome = outcome
	r.revealDealer = true

	r.logger.Info("round complete",
		"outcome", outcome,
		"player", HandValue(r.player),
		"dealer", HandValue(r.dealer))

	var payout int64
	switch outcome {
	case PlayerWin:
		payout = r.wager * 2
	case PlayerBlackjack:
		payout = r.wager + r.wager*3/2
	case Push:
		payout = r.wager
	}

	if payout > 0 {
		if err := r.chips.Credit(payout); err != nil {
			r.logger.Error("failed to settle payout", "payout", payout, "error", err)
			return fmt.Errorf("settling round: %w", err)
		}
	}
	return nil
}

// deal draws n cards from the deck into hand
func (r *Round) deal(hand *cards.Hand, n int) error {
	for i := 0; i < n; i++ {
		card, err := r.deck.Draw()
		if err != nil {
			return fmt.Errorf("dealing card: %w", err)
		}
		*hand = append(*hand, card)
	}
	return nil
}

// State returns the current round state
func (r *Round) State() State { return r.state }

// Outcome returns the outcome tag of a completed round
func (r *Round) Outcome() Outcome { return r.outcome }

// DealerState returns the dealer policy state
func (r *Round) DealerState() DealerState { return r.dealerState }

// Standing reports whether the player has stood
func (r *Round) Standing() bool { return r.standing }

// Wager returns the chips staked on the current round
func (r *Round) Wager() int64 { return r.wager }

// Balance returns the shared chip balance
func (r *Round) Balance() int64 { return r.chips.Balance() }

// CanAct reports whether hit/stand are currently valid, which is what the
// input layer polls to enable its controls.
func (r *Round) CanAct() bool {
	return r.state == InProgress && !r.standing && !r.playerBust
}

// PlayerValue returns the player's current hand value
func (r *Round) PlayerValue() int { return HandValue(r.player) }

// DealerVisibleValue returns the dealer hand value as the player sees it:
// only the upcard counts until the round completes.
func (r *Round) DealerVisibleValue() int {
	return VisibleValue(r.dealer, r.revealDealer)
}

// PlayerHand returns a copy of the player's hand
func (r *Round) PlayerHand() cards.Hand {
	return append(cards.Hand(nil), r.player...)
}

// DealerHand returns a copy of the dealer's hand. Before showdown only
// the upcard is returned.
func (r *Round) DealerHand() cards.Hand {
	if !r.revealDealer && len(r.dealer) > 1 {
		return append(cards.Hand(nil), r.dealer[:1]...)
	}
	return append(cards.Hand(nil), r.dealer...)
}

// HiddenDealerCards returns how many dealer cards are still face down.
// Zero once the round completes and the hand is revealed.
func (r *Round) HiddenDealerCards() int {
	if r.revealDealer || len(r.dealer) <= 1 {
		return 0
	}
	return len(r.dealer) - 1
}
