// Package tui renders the blackjack table in the terminal. It is the
// frame driver for the round engine: a Bubble Tea ticker calls Tick on
// the round once per frame and the keyboard feeds the player actions.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/casino/cards"
	"github.com/lox/casino/internal/blackjack"
	"github.com/lox/casino/internal/ledger"
)

// frameInterval is how often the round engine is ticked
const frameInterval = 100 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#006633")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	hiddenCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

// tickMsg drives one round evaluation step
type tickMsg time.Time

// Model is the Bubble Tea model for the blackjack table
type Model struct {
	round   *blackjack.Round
	spinner spinner.Model
	status  string
	err     string

	quitting bool
}

// NewModel creates a table model over the given round engine
func NewModel(round *blackjack.Round) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	return Model{
		round:   round,
		spinner: sp,
		status:  "Press n to deal",
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spinner.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if err := m.round.Tick(); err != nil {
			m.err = err.Error()
		}
		if m.round.State() == blackjack.Complete {
			m.status = outcomeText(m.round.Outcome()) + "  Press n to deal again"
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "n", "enter":
			if err := m.round.Start(); err != nil {
				if errors.Is(err, ledger.ErrInsufficientFunds) {
					m.err = "Not enough chips — claim a bonus with `casino bonus`"
				} else {
					m.err = err.Error()
				}
				return m, nil
			}
			m.err = ""
			m.status = "Your move"

		case "h":
			m.round.Hit()

		case "s":
			m.round.Stand()
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	b.WriteString("\n\n")

	dealerLine := fmt.Sprintf("%s %s  %s",
		labelStyle.Render("Dealer:"),
		renderDealer(m.round),
		labelStyle.Render(fmt.Sprintf("(%d)", m.round.DealerVisibleValue())))
	if m.round.DealerState() == blackjack.DealerEvaluating && m.round.State() == blackjack.InProgress {
		dealerLine += "  " + m.spinner.View() + labelStyle.Render(" thinking")
	}
	b.WriteString(dealerLine)
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		labelStyle.Render("You:   "),
		renderHand(m.round.PlayerHand()),
		labelStyle.Render(fmt.Sprintf("(%d)", m.round.PlayerValue()))))

	b.WriteString(fmt.Sprintf("%s %d chips — %d staked\n\n",
		labelStyle.Render("Bank:"), m.round.Balance(), m.round.Wager()))

	b.WriteString(m.status)
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	if m.round.CanAct() {
		b.WriteString(helpStyle.Render("h hit • s stand • q quit"))
	} else {
		b.WriteString(helpStyle.Render("n deal • q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderDealer shows the dealer's upcard plus a face-down marker for each
// hole card until the round completes.
func renderDealer(round *blackjack.Round) string {
	return renderDealerCards(round.DealerHand(), round.HiddenDealerCards())
}

func renderDealerCards(shown cards.Hand, hidden int) string {
	s := renderHand(shown)
	for i := 0; i < hidden; i++ {
		s += " " + hiddenCardStyle.Render("[??]")
	}
	return s
}

func renderHand(hand cards.Hand) string {
	parts := make([]string, 0, len(hand))
	for _, c := range hand {
		style := blackCardStyle
		if c.Suit.IsRed() {
			style = redCardStyle
		}
		parts = append(parts, style.Render(c.String()))
	}
	return strings.Join(parts, " ")
}

func outcomeText(outcome blackjack.Outcome) string {
	switch outcome {
	case blackjack.PlayerWin:
		return winStyle.Render("You win!")
	case blackjack.PlayerBlackjack:
		return winStyle.Render("Blackjack!")
	case blackjack.DealerWin:
		return loseStyle.Render("Dealer wins")
	case blackjack.Push:
		return pushStyle.Render("Push")
	default:
		return ""
	}
}
