package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/casino/internal/blackjack"
	"github.com/lox/casino/internal/config"
	"github.com/lox/casino/internal/ledger"
	"github.com/lox/casino/internal/randutil"
	"github.com/lox/casino/internal/rewards"
	"github.com/lox/casino/internal/roulette"
	"github.com/lox/casino/internal/slots"
	"github.com/lox/casino/internal/store"
	"github.com/lox/casino/internal/tui"
)

var (
	wonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	lostStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// CLI is the command line interface for the casino
type CLI struct {
	Config string `help:"Path to the HCL config file" type:"path"`
	Debug  bool   `help:"Enable debug logging"`
	Seed   int64  `help:"Random seed (0 seeds from the clock)"`

	Blackjack  BlackjackCmd  `cmd:"" help:"Sit down at the blackjack table"`
	Roulette   RouletteCmd   `cmd:"" help:"Put chips on the roulette board and spin"`
	Slots      SlotsCmd      `cmd:"" help:"Pull the slot machine"`
	Balance    BalanceCmd    `cmd:"" help:"Show the chip balance"`
	Bonus      BonusCmd      `cmd:"" help:"Claim the free-chip bonus"`
	Simulate   SimulateCmd   `cmd:"" help:"Auto-play blackjack rounds and report the house take"`
	InitConfig InitConfigCmd `cmd:"" name:"init-config" help:"Write the default config file"`
}

// App carries the wired-up casino shared by every command
type App struct {
	cfg    *config.Config
	logger *log.Logger
	chips  *ledger.Ledger
	db     *store.SQLiteStore
	seed   int64
}

// Close releases the persistence backend
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func newApp(cli CLI) (*App, error) {
	path := cli.Config
	if path == "" {
		path = filepath.Join(defaultConfigDir(), "casino.hcl")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := log.InfoLevel
	if parsed, err := log.ParseLevel(cfg.Casino.LogLevel); err == nil {
		level = parsed
	}
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})

	if err := os.MkdirAll(cfg.Casino.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := store.OpenSQLite(filepath.Join(cfg.Casino.DataDir, "casino.db"))
	if err != nil {
		return nil, fmt.Errorf("opening chip store: %w", err)
	}

	chips, err := ledger.Open(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	seed := cfg.Casino.Seed
	if cli.Seed != 0 {
		seed = cli.Seed
	}
	if seed == 0 {
		seed = randutil.TimeSeed()
	}

	return &App{cfg: cfg, logger: logger, chips: chips, db: db, seed: seed}, nil
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".casino")
}

// BlackjackCmd runs the interactive table
type BlackjackCmd struct{}

// Run starts the Bubble Tea table over the shared ledger
func (c *BlackjackCmd) Run(app *App) error {
	// The table owns the terminal; debug logs go to a file instead
	logFile, err := os.OpenFile(filepath.Join(app.cfg.Casino.DataDir, "casino.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	round := blackjack.NewRound(randutil.New(app.seed), app.chips, logger,
		blackjack.WithWager(app.cfg.Blackjack.Wager),
		blackjack.WithThinkDelay(app.cfg.Blackjack.ThinkDelay()))

	program := tea.NewProgram(tui.NewModel(round))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running table: %w", err)
	}

	fmt.Printf("You leave the table with %d chips\n", app.chips.Balance())
	return nil
}

// RouletteCmd places bets and spins once
type RouletteCmd struct {
	Bets []string `arg:"" help:"Bets as spot:amount, e.g. red:10 17:5 even:20"`
}

// Run settles a single spin
func (c *RouletteCmd) Run(app *App) error {
	table := roulette.NewTable(randutil.New(app.seed), app.chips, app.logger)

	for _, bet := range c.Bets {
		spot, amount, err := parseBet(bet)
		if err != nil {
			return err
		}
		if err := table.PlaceBet(spot, amount); err != nil {
			return err
		}
	}

	result, err := table.Spin()
	if err != nil {
		return err
	}

	fmt.Printf("The ball lands on %d\n", result.Pocket)
	if result.Won > 0 {
		fmt.Println(wonStyle.Render(fmt.Sprintf("You won %d chips!", result.Won)))
	} else {
		fmt.Println(lostStyle.Render("No winner"))
	}
	fmt.Printf("Balance: %d chips\n", app.chips.Balance())
	return nil
}

// parseBet splits a spot:amount argument into a board spot and stake
func parseBet(s string) (roulette.Spot, int64, error) {
	name, amountStr, ok := strings.Cut(s, ":")
	if !ok {
		return roulette.Spot{}, 0, fmt.Errorf("bet %q must be spot:amount", s)
	}

	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		return roulette.Spot{}, 0, fmt.Errorf("bet %q has an invalid amount: %w", s, err)
	}

	switch strings.ToLower(name) {
	case "red":
		return roulette.Red, amount, nil
	case "black":
		return roulette.Black, amount, nil
	case "odd":
		return roulette.Odd, amount, nil
	case "even":
		return roulette.Even, amount, nil
	case "low":
		return roulette.Low, amount, nil
	case "high":
		return roulette.High, amount, nil
	}

	number, err := strconv.Atoi(name)
	if err != nil {
		return roulette.Spot{}, 0, fmt.Errorf("bet %q has an unknown spot", s)
	}
	return roulette.Straight(number), amount, nil
}

// SlotsCmd pulls the machine one or more times
type SlotsCmd struct {
	Pulls int `help:"Number of pulls" default:"1"`
}

// Run plays the requested pulls, stopping when the chips run out
func (c *SlotsCmd) Run(app *App) error {
	machine := slots.NewMachine(randutil.New(app.seed), app.chips, app.logger)

	for i := 0; i < c.Pulls; i++ {
		result, err := machine.Pull()
		if err != nil {
			return err
		}

		if result.Won() {
			fmt.Println(wonStyle.Render(fmt.Sprintf("%s — you won %d chips!", result.Line, result.Payout)))
		} else {
			fmt.Println(lostStyle.Render("no match — better luck next time"))
		}
	}

	fmt.Printf("Balance: %d chips\n", app.chips.Balance())
	return nil
}

// BalanceCmd shows the persisted chip balance
type BalanceCmd struct{}

// Run prints the balance
func (c *BalanceCmd) Run(app *App) error {
	fmt.Printf("%d chips\n", app.chips.Balance())
	return nil
}

// BonusCmd claims the free-chip grant
type BonusCmd struct{}

// Run claims the bonus once
func (c *BonusCmd) Run(app *App) error {
	bonus := rewards.NewBonus(app.chips, app.logger,
		rewards.WithAmount(app.cfg.Rewards.BonusAmount),
		rewards.WithCooldown(app.cfg.Rewards.Cooldown()))

	granted, err := bonus.Claim()
	if err != nil {
		return err
	}

	fmt.Println(wonStyle.Render(fmt.Sprintf("Claimed %d chips", granted)))
	fmt.Printf("Balance: %d chips\n", app.chips.Balance())
	return nil
}

// InitConfigCmd writes the default configuration file
type InitConfigCmd struct{}

// Run writes the default config next to the chip store
func (c *InitConfigCmd) Run(app *App, cli *CLI) error {
	path := cli.Config
	if path == "" {
		path = filepath.Join(defaultConfigDir(), "casino.hcl")
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("casino"),
		kong.Description("A small casino for your terminal: blackjack, roulette and slots over one chip ledger."))

	app, err := newApp(cli)
	if err != nil {
		log.Fatal("Failed to start casino", "error", err)
	}
	defer app.Close()

	ctx.FatalIfErrorf(ctx.Run(app, &cli))
}
