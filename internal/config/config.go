package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values
type Config struct {
	Addr            string        `yaml:"addr"`
	DBPath          string        `yaml:"db_path"`
	SpreadsheetID   string        `yaml:"spreadsheet_id"`
	SheetsAPIKey    string        `yaml:"sheets_api_key"`
	ScheduleSheet   string        `yaml:"schedule_sheet"`
	HistorySheet    string        `yaml:"history_sheet"`
	RegulationSheet string        `yaml:"regulation_sheet"`
	SnapshotMaxAge  time.Duration `yaml:"snapshot_max_age"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`

	DBPathSource string // where DBPath was set from: "default", "yaml file", or "env var"
	DemoMode     bool   // serve embedded sample rows instead of Sheets (set via -demo flag)
}

// Load loads configuration from YAML file and overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults. Sheet names match the source spreadsheet's tabs.
	cfg := &Config{
		Addr:            ":8080",
		DBPath:          "./fleetboard.db",
		DBPathSource:    "default",
		ScheduleSheet:   "ГРАФІК ОБСЛУГОВУВАННЯ",
		HistorySheet:    "ІСТОРІЯ ОБСЛУГОВУВАННЯ",
		RegulationSheet: "НОРМАТИВИ",
		SnapshotMaxAge:  5 * time.Minute,
		RefreshInterval: 30 * time.Minute,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
	}

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prevDBPath := cfg.DBPath
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
		if cfg.DBPath != prevDBPath {
			cfg.DBPathSource = "yaml file"
		}
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
		cfg.DBPathSource = "env var"
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := os.Getenv("SHEETS_API_KEY"); v != "" {
		cfg.SheetsAPIKey = v
	}

	return cfg, nil
}
