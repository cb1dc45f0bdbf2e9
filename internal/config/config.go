// Package config loads the casino's HCL configuration. A missing file
// yields the defaults, so a fresh checkout plays out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/casino/internal/fileutil"
)

// Config is the complete casino configuration
type Config struct {
	Casino    CasinoSettings    `hcl:"casino,block"`
	Blackjack BlackjackSettings `hcl:"blackjack,block"`
	Rewards   RewardsSettings   `hcl:"rewards,block"`
}

// CasinoSettings contains settings shared by every game
type CasinoSettings struct {
	DataDir  string `hcl:"data_dir,optional"`
	LogLevel string `hcl:"log_level,optional"`
	Seed     int64  `hcl:"seed,optional"` // 0 means seed from the clock
}

// BlackjackSettings configures the blackjack table
type BlackjackSettings struct {
	Wager        int64 `hcl:"wager,optional"`
	ThinkDelayMS int   `hcl:"think_delay_ms,optional"`
}

// ThinkDelay returns the dealer think delay as a duration
func (b BlackjackSettings) ThinkDelay() time.Duration {
	return time.Duration(b.ThinkDelayMS) * time.Millisecond
}

// RewardsSettings configures the free-chip bonus
type RewardsSettings struct {
	BonusAmount     int64 `hcl:"bonus_amount,optional"`
	CooldownSeconds int   `hcl:"cooldown_seconds,optional"`
}

// Cooldown returns the bonus cooldown as a duration
func (r RewardsSettings) Cooldown() time.Duration {
	return time.Duration(r.CooldownSeconds) * time.Second
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Casino: CasinoSettings{
			DataDir:  defaultDataDir(),
			LogLevel: "info",
		},
		Blackjack: BlackjackSettings{
			Wager:        10,
			ThinkDelayMS: 2000,
		},
		Rewards: RewardsSettings{
			BonusAmount:     10,
			CooldownSeconds: 30,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".casino")
}

// fileConfig mirrors Config with pointer fields so a decoded file only
// carries what it actually sets: missing blocks and attributes stay nil
// and the defaults underneath survive the merge.
type fileConfig struct {
	Casino    *casinoFile    `hcl:"casino,block"`
	Blackjack *blackjackFile `hcl:"blackjack,block"`
	Rewards   *rewardsFile   `hcl:"rewards,block"`
}

type casinoFile struct {
	DataDir  *string `hcl:"data_dir,optional"`
	LogLevel *string `hcl:"log_level,optional"`
	Seed     *int64  `hcl:"seed,optional"`
}

type blackjackFile struct {
	Wager        *int64 `hcl:"wager,optional"`
	ThinkDelayMS *int   `hcl:"think_delay_ms,optional"`
}

type rewardsFile struct {
	BonusAmount     *int64 `hcl:"bonus_amount,optional"`
	CooldownSeconds *int   `hcl:"cooldown_seconds,optional"`
}

// merge copies every field the file set over the defaults in cfg
func (f *fileConfig) merge(cfg *Config) {
	if f.Casino != nil {
		setIf(&cfg.Casino.DataDir, f.Casino.DataDir)
		setIf(&cfg.Casino.LogLevel, f.Casino.LogLevel)
		setIf(&cfg.Casino.Seed, f.Casino.Seed)
	}
	if f.Blackjack != nil {
		setIf(&cfg.Blackjack.Wager, f.Blackjack.Wager)
		setIf(&cfg.Blackjack.ThinkDelayMS, f.Blackjack.ThinkDelayMS)
	}
	if f.Rewards != nil {
		setIf(&cfg.Rewards.BonusAmount, f.Rewards.BonusAmount)
		setIf(&cfg.Rewards.CooldownSeconds, f.Rewards.CooldownSeconds)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Load reads configuration from an HCL file, falling back to defaults
// when the file doesn't exist. Blocks and fields absent from the file
// keep their default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file: %s", diags.Error())
	}
	fc.merge(cfg)

	if cfg.Blackjack.Wager <= 0 {
		return nil, fmt.Errorf("blackjack wager must be positive, got %d", cfg.Blackjack.Wager)
	}
	if cfg.Blackjack.ThinkDelayMS < 0 {
		return nil, fmt.Errorf("blackjack think_delay_ms must not be negative, got %d", cfg.Blackjack.ThinkDelayMS)
	}

	return cfg, nil
}

// WriteDefault writes the default configuration to filename so players
// have a file to edit. The write is atomic.
func WriteDefault(filename string) error {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(Default(), f.Body())

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return fileutil.WriteFileAtomic(filename, f.Bytes(), 0644)
}
