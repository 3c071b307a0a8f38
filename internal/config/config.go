package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankbook-dev/bankbook/internal/model"
)

// Config represents the top-level bankbook.yaml configuration.
type Config struct {
	Ledger   LedgerConfig    `yaml:"ledger"`
	Accounts []AccountConfig `yaml:"accounts"`
	Feed     FeedConfig      `yaml:"feed,omitempty"`
	Tax      TaxConfig       `yaml:"tax"`
}

// LedgerConfig locates the durable store.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// AccountConfig declares one logical account and, optionally, the CSV
// export feeding it. Goal accounts have no CSV by design.
type AccountConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	CSV  string `yaml:"csv,omitempty"`
	Goal bool   `yaml:"goal,omitempty"`
}

// FeedConfig configures the external aggregation feed. AccountMap is the
// explicit feed-account-ID to canonical-name mapping; there is no default
// mapping rule, unmapped feed accounts are skipped.
type FeedConfig struct {
	AccountMap map[string]string `yaml:"account_map,omitempty"`
}

// TaxConfig holds contractor tax parameters.
type TaxConfig struct {
	ReserveRate float64 `yaml:"reserve_rate"`
}

// Load reads a bankbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{Path: "bankbook.db"},
		Accounts: []AccountConfig{
			{Name: "PNC Checking", Type: string(model.AccountTypeChecking), CSV: "pnc.csv"},
			{Name: "Capital One Checking", Type: string(model.AccountTypeChecking), CSV: "capone.csv"},
			{Name: "Ally Savings", Type: string(model.AccountTypeSavings), Goal: true},
		},
		Tax: TaxConfig{ReserveRate: 0.30},
	}
}

// AccountType converts the declared type string, defaulting to checking.
func (a AccountConfig) AccountType() model.AccountType {
	switch a.Type {
	case string(model.AccountTypeSavings):
		return model.AccountTypeSavings
	case string(model.AccountTypeCredit):
		return model.AccountTypeCredit
	default:
		return model.AccountTypeChecking
	}
}
