// Package config loads importer settings from the environment, reading a
// .env file first when one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dvloznov/condo-os/internal/extract"
	"github.com/dvloznov/condo-os/internal/notionsync"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// ErrMissingNotionToken is returned by Validate when writes are requested
// without NOTION_TOKEN.
var ErrMissingNotionToken = errors.New("NOTION_TOKEN is required")

// ErrMissingDatabase is returned by Validate when a Notion database ID is
// not configured.
var ErrMissingDatabase = errors.New("notion database ID is required")

// Config holds all importer configuration.
type Config struct {
	Notion   NotionConfig
	Import   ImportConfig
	GCP      GCPConfig
	LogLevel string
}

type NotionConfig struct {
	Token       string
	UnitsDB     string
	LedgerDB    string
	ExpensesDB  string
	MovementsDB string
	BudgetDB    string
	AccountsDB  string
}

type ImportConfig struct {
	RequestDelay     time.Duration
	MaxVerboseErrors int
	MinLedgerSerial  float64
}

type GCPConfig struct {
	ProjectID       string
	Dataset         string
	CredentialsFile string
}

// Load reads configuration from environment variables. Values in a .env
// file in the working directory (or in envFiles) are applied first without
// overriding variables already set.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	cfg := &Config{
		Notion: NotionConfig{
			Token:       getEnv("NOTION_TOKEN", ""),
			UnitsDB:     getEnv("NOTION_UNITS_DB_ID", ""),
			LedgerDB:    getEnv("NOTION_LEDGER_DB_ID", ""),
			ExpensesDB:  getEnv("NOTION_EXPENSES_DB_ID", ""),
			MovementsDB: getEnv("NOTION_MOVEMENTS_DB_ID", ""),
			BudgetDB:    getEnv("NOTION_BUDGET_DB_ID", ""),
			AccountsDB:  getEnv("NOTION_ACCOUNTS_DB_ID", ""),
		},
		Import: ImportConfig{
			RequestDelay:     time.Duration(getEnvAsInt("IMPORT_REQUEST_DELAY_MS", 350)) * time.Millisecond,
			MaxVerboseErrors: getEnvAsInt("IMPORT_MAX_VERBOSE_ERRORS", 5),
			MinLedgerSerial:  getEnvAsFloat("IMPORT_MIN_LEDGER_SERIAL", extract.DefaultConfig().MinLedgerSerial),
		},
		GCP: GCPConfig{
			ProjectID:       getEnv("GCP_PROJECT_ID", ""),
			Dataset:         getEnv("BIGQUERY_DATASET", "condo"),
			CredentialsFile: getEnv("GCP_CREDENTIALS_FILE", ""),
		},
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	return cfg, nil
}

// Validate checks the configuration. requireNotion is set for runs that
// write to Notion; those need the token and every write database. Dry runs
// need nothing.
func (c *Config) Validate(requireNotion bool) error {
	if c.Import.RequestDelay < 0 {
		return fmt.Errorf("Validate: IMPORT_REQUEST_DELAY_MS must not be negative")
	}
	if !requireNotion {
		return nil
	}
	if c.Notion.Token == "" {
		return fmt.Errorf("Validate: %w", ErrMissingNotionToken)
	}

	dbs := c.Notion.Databases()
	missing := dbs.Missing(
		notionsync.CollectionUnits, notionsync.CollectionLedger, notionsync.CollectionExpenses,
		notionsync.CollectionMovements, notionsync.CollectionBudget,
	)
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = envKey(m)
		}
		return fmt.Errorf("Validate: %w: %s", ErrMissingDatabase, strings.Join(names, ", "))
	}

	return nil
}

// Databases maps each collection to its configured database ID.
func (n NotionConfig) Databases() notionsync.Databases {
	return notionsync.Databases{
		notionsync.CollectionUnits:     n.UnitsDB,
		notionsync.CollectionLedger:    n.LedgerDB,
		notionsync.CollectionExpenses:  n.ExpensesDB,
		notionsync.CollectionMovements: n.MovementsDB,
		notionsync.CollectionBudget:    n.BudgetDB,
		notionsync.CollectionAccounts:  n.AccountsDB,
	}
}

// Extract returns the extractor tunables.
func (i ImportConfig) Extract() extract.Config {
	cfg := extract.DefaultConfig()
	cfg.MinLedgerSerial = i.MinLedgerSerial
	return cfg
}

// ClientOptions returns the options for Google Cloud clients. Without a
// credentials file the clients fall back to Application Default Credentials.
func (g GCPConfig) ClientOptions() []option.ClientOption {
	if g.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(g.CredentialsFile)}
}

func envKey(c notionsync.Collection) string {
	return "NOTION_" + strings.ToUpper(string(c)) + "_DB_ID"
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
