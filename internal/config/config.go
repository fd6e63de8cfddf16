package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	Server struct {
		Addr string `yaml:"addr"` // websocket transport listen address, "" disables it
	} `yaml:"server"`
	Sheets struct {
		CredentialsFile      string `yaml:"credentials_file"`
		SpreadsheetID        string `yaml:"spreadsheet_id"`         // user registry spreadsheet
		ResultsSpreadsheetID string `yaml:"results_spreadsheet_id"` // defaults to spreadsheet_id
		QuizSheet            string `yaml:"quiz_sheet"`
		ScanLimit            int    `yaml:"scan_limit"`
	} `yaml:"sheets"`
	Surveys struct {
		Dir string `yaml:"dir"`
	} `yaml:"surveys"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Session struct {
		TTL string `yaml:"ttl"`
	} `yaml:"session"`
	Cache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"cache"`
}

// Load reads YAML config from path and applies defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Sheets.QuizSheet == "" {
		cfg.Sheets.QuizSheet = "Тест"
	}
	if cfg.Sheets.ResultsSpreadsheetID == "" {
		cfg.Sheets.ResultsSpreadsheetID = cfg.Sheets.SpreadsheetID
	}
	if cfg.Surveys.Dir == "" {
		cfg.Surveys.Dir = "surveys"
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty
// or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
