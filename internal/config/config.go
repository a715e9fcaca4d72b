// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Credential store drivers.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

const (
	// DefaultAPIBase is where the scoring backend listens by default.
	DefaultAPIBase = "http://localhost:5000"
	// DefaultReportPath is the fixed filename of the exported report.
	DefaultReportPath = "ats-analysis-report.txt"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Backend
	APIBase string `json:"api_base,omitempty" yaml:"api_base,omitempty"` // Base URL of the scoring backend

	// Credentials
	CredentialStore string `json:"credential_store,omitempty" yaml:"credential_store,omitempty"` // file, postgres or memory
	CredentialsPath string `json:"credentials_path,omitempty" yaml:"credentials_path,omitempty"` // Path of the file store
	DatabaseURL     string `json:"database_url,omitempty" yaml:"database_url,omitempty"`         // PostgreSQL connection URL for the postgres store

	// Output
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"` // Where exported reports are written

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty" yaml:"log_file,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`         // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBase:         DefaultAPIBase,
		CredentialStore: StoreFile,
		CredentialsPath: defaultCredentialsPath(),
		ReportPath:      DefaultReportPath,
		LogLevel:        "info",
	}
}

// FromEnv returns the configuration set through environment variables.
// Unset variables leave the corresponding field empty.
func FromEnv() Config {
	return Config{
		APIBase:         os.Getenv("ATS_API_BASE"),
		CredentialStore: os.Getenv("ATS_CREDENTIAL_STORE"),
		CredentialsPath: os.Getenv("ATS_CREDENTIALS_PATH"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ReportPath:      os.Getenv("ATS_REPORT_PATH"),
		LogLevel:        os.Getenv("ATS_LOG_LEVEL"),
		LogFile:         os.Getenv("ATS_LOG_FILE"),
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.CredentialStore {
	case "", StoreFile, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres credential store")
		}
	default:
		return fmt.Errorf("config error: unknown credential_store %q (want file, postgres or memory)", c.CredentialStore)
	}

	if c.APIBase != "" {
		u, err := url.Parse(c.APIBase)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'api_base' must be an http(s) URL, got %q", c.APIBase)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to layer config file values over env values over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBase == "" {
		result.APIBase = defaults.APIBase
	}
	if result.CredentialStore == "" {
		result.CredentialStore = defaults.CredentialStore
	}
	if result.CredentialsPath == "" {
		result.CredentialsPath = defaults.CredentialsPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ReportPath == "" {
		result.ReportPath = defaults.ReportPath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	// Bool fields: cannot distinguish unset from false, so a true anywhere wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Resolve layers command-line overrides over an optional config file over the
// environment over the built-in defaults, then validates the result once.
func Resolve(path string, overrides Config) (Config, error) {
	env := FromEnv()
	merged := env.MergeWithDefaults(Defaults())

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = fileCfg.MergeWithDefaults(merged)
	}

	merged = overrides.MergeWithDefaults(merged)
	return merged, merged.Validate()
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "resume-analyzer", "credentials.json")
}
