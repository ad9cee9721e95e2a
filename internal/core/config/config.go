// Package config handles configuration loading and validation for shopterm.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// ClearScreen wipes the terminal between settled turns so each screen
	// renders fresh. Off by default so piped input stays readable.
	ClearScreen bool `yaml:"clear_screen"`

	Files   Files   `yaml:"files"`
	Reports Reports `yaml:"reports"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// Files names the flat data files, resolved relative to the data directory.
type Files struct {
	Accounts       string `yaml:"accounts"`
	Products       string `yaml:"products"`
	Sales          string `yaml:"sales"`
	Messages       string `yaml:"messages"`
	Payments       string `yaml:"payments"`
	DailyReports   string `yaml:"daily_reports"`
	MonthlyReports string `yaml:"monthly_reports"`
}

// Reports configures automatic report generation in the console loop.
type Reports struct {
	Auto        bool   `yaml:"auto"`         // generate reports automatically
	WindowStart string `yaml:"window_start"` // daily window open, "HH:MM"
	WindowEnd   string `yaml:"window_end"`   // daily window close, "HH:MM"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Files: Files{
			Accounts:       "accounts.txt",
			Products:       "products.txt",
			Sales:          "sales.txt",
			Messages:       "messages.txt",
			Payments:       "payments.txt",
			DailyReports:   "dailySalesReports.txt",
			MonthlyReports: "monthlySalesReports.txt",
		},
		Reports: Reports{
			Auto:        true,
			WindowStart: "20:55",
			WindowEnd:   "21:05",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Files.Accounts == "" {
		c.Files.Accounts = defaults.Files.Accounts
	}
	if c.Files.Products == "" {
		c.Files.Products = defaults.Files.Products
	}
	if c.Files.Sales == "" {
		c.Files.Sales = defaults.Files.Sales
	}
	if c.Files.Messages == "" {
		c.Files.Messages = defaults.Files.Messages
	}
	if c.Files.Payments == "" {
		c.Files.Payments = defaults.Files.Payments
	}
	if c.Files.DailyReports == "" {
		c.Files.DailyReports = defaults.Files.DailyReports
	}
	if c.Files.MonthlyReports == "" {
		c.Files.MonthlyReports = defaults.Files.MonthlyReports
	}
	if c.Reports.WindowStart == "" {
		c.Reports.WindowStart = defaults.Reports.WindowStart
	}
	if c.Reports.WindowEnd == "" {
		c.Reports.WindowEnd = defaults.Reports.WindowEnd
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	start, err := time.Parse("15:04", c.Reports.WindowStart)
	if err != nil {
		return fmt.Errorf("reports.window_start: %w", err)
	}
	end, err := time.Parse("15:04", c.Reports.WindowEnd)
	if err != nil {
		return fmt.Errorf("reports.window_end: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("reports.window_start %q must be before window_end %q", c.Reports.WindowStart, c.Reports.WindowEnd)
	}

	return nil
}

// Window returns the daily report window bounds as clock times.
func (c *Config) Window() (start, end time.Time) {
	start, _ = time.Parse("15:04", c.Reports.WindowStart)
	end, _ = time.Parse("15:04", c.Reports.WindowEnd)
	return start, end
}

// AccountsPath returns the path to the accounts file.
func (c *Config) AccountsPath() string {
	return filepath.Join(c.DataDir, c.Files.Accounts)
}

// ProductsPath returns the path to the product catalog file.
func (c *Config) ProductsPath() string {
	return filepath.Join(c.DataDir, c.Files.Products)
}

// SalesPath returns the path to the raw sales log.
func (c *Config) SalesPath() string {
	return filepath.Join(c.DataDir, c.Files.Sales)
}

// MessagesPath returns the path to the conversation file.
func (c *Config) MessagesPath() string {
	return filepath.Join(c.DataDir, c.Files.Messages)
}

// PaymentsPath returns the path to the payment ledger.
func (c *Config) PaymentsPath() string {
	return filepath.Join(c.DataDir, c.Files.Payments)
}

// DailyReportsPath returns the path to the daily report archive.
func (c *Config) DailyReportsPath() string {
	return filepath.Join(c.DataDir, c.Files.DailyReports)
}

// MonthlyReportsPath returns the path to the monthly report archive.
func (c *Config) MonthlyReportsPath() string {
	return filepath.Join(c.DataDir, c.Files.MonthlyReports)
}
