// Package config loads ingester settings: defaults, then an optional YAML
// file, then environment variables (after reading .env).
package config

import (
	"os"
	"path/filepath"
	"time"

	"edinet_ingest/pkg/core/edinet"
	"edinet_ingest/pkg/core/extract"
	"edinet_ingest/pkg/core/mapping"
	"edinet_ingest/pkg/core/store"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultPath is read when no config file is named. It may be absent.
const DefaultPath = "config/edinet.yaml"

// DateLayout is the layout of listing dates.
const DateLayout = "2006-01-02"

// Environment variables that override file settings.
const (
	EnvAPIKey      = "EDINET_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvBaseDir     = "EDINET_BASE_DIR"
)

// ErrMissingAPIKey is returned by ValidateIngest without a subscription key.
var ErrMissingAPIKey = errors.New("config: EDINET_API_KEY not set")

type Config struct {
	API     APIConfig     `yaml:"api"`
	BaseDir string        `yaml:"base_dir"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Extract ExtractConfig `yaml:"extract"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type IngestConfig struct {
	Start    string   `yaml:"start"` // YYYY-MM-DD
	Days     int      `yaml:"days"`
	DocTypes []string `yaml:"doc_types"`
	Workers  int      `yaml:"workers"`
	Throttle string   `yaml:"throttle"` // time.ParseDuration syntax
}

type ExtractConfig struct {
	Qualifiers     extract.Qualifiers `yaml:"qualifiers"`
	MappingOverlay string             `yaml:"mapping_overlay"`
}

type StoreConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
}

type LogConfig struct {
	JSON bool `yaml:"json"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		API:     APIConfig{BaseURL: edinet.DefaultBaseURL},
		BaseDir: "edinet_documents",
		Ingest: IngestConfig{
			Start:    "2015-04-01",
			Days:     5,
			DocTypes: []string{edinet.DocTypeQuarterlyReport, edinet.DocTypeAmendedQuarterlyReport},
			Workers:  1,
			Throttle: edinet.DefaultInterval.String(),
		},
		Extract: ExtractConfig{Qualifiers: extract.DefaultQualifiers()},
		Store:   StoreConfig{Driver: store.DriverSQLite},
	}
}

// Load reads .env, the YAML file at path and the environment. An empty path
// means DefaultPath, which may be missing; a named file must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, errors.Wrapf(err, "read %s", path)
	}

	cfg.applyEnv()
	cfg.fillDerived()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.API.APIKey = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Store.DatabaseURL = v
	}
	if v := os.Getenv(EnvBaseDir); v != "" {
		c.BaseDir = v
	}
}

func (c *Config) fillDerived() {
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = filepath.Join(c.BaseDir, "reports.db")
	}
	if c.Extract.Qualifiers.Income == "" {
		c.Extract.Qualifiers.Income = extract.CurrentYTDDuration
	}
	if c.Extract.Qualifiers.Balance == "" {
		c.Extract.Qualifiers.Balance = extract.CurrentQuarterInstant
	}
}

// Validate checks settings every command relies on.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case store.DriverSQLite, store.DriverPostgres:
	default:
		return errors.Newf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == store.DriverPostgres && c.Store.DatabaseURL == "" {
		return errors.New("config: postgres driver needs DATABASE_URL")
	}
	if c.BaseDir == "" {
		return errors.New("config: base_dir is empty")
	}
	if _, err := c.ThrottleInterval(); err != nil {
		return err
	}
	return nil
}

// ValidateIngest adds the checks only the ingestion loop needs.
func (c *Config) ValidateIngest() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.API.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Ingest.Days <= 0 {
		return errors.Newf("config: days must be positive, got %d", c.Ingest.Days)
	}
	if c.Ingest.Workers <= 0 {
		return errors.Newf("config: workers must be positive, got %d", c.Ingest.Workers)
	}
	if _, err := c.StartDate(); err != nil {
		return err
	}
	if len(c.Ingest.DocTypes) == 0 {
		return errors.New("config: no document types selected")
	}
	return nil
}

// StartDate parses Ingest.Start.
func (c *Config) StartDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.Ingest.Start)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "config: malformed start date %q", c.Ingest.Start)
	}
	return t, nil
}

// ThrottleInterval parses Ingest.Throttle. Empty means no throttling.
func (c *Config) ThrottleInterval() (time.Duration, error) {
	if c.Ingest.Throttle == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Ingest.Throttle)
	if err != nil {
		return 0, errors.Wrapf(err, "config: malformed throttle %q", c.Ingest.Throttle)
	}
	if d < 0 {
		return 0, errors.Newf("config: negative throttle %s", d)
	}
	return d, nil
}

// StoreSettings converts the store section for store.Open.
func (c *Config) StoreSettings() store.Config {
	return store.Config{
		Driver:      c.Store.Driver,
		SQLitePath:  c.Store.SQLitePath,
		DatabaseURL: c.Store.DatabaseURL,
	}
}

// NewExtractor builds an extractor from the qualifiers and the optional
// mapping overlay.
func (c *Config) NewExtractor() (*extract.Extractor, error) {
	opts := []extract.Option{extract.WithQualifiers(c.Extract.Qualifiers)}
	if c.Extract.MappingOverlay != "" {
		overlay, err := mapping.LoadOverlay(c.Extract.MappingOverlay)
		if err != nil {
			return nil, err
		}
		income, balance, err := overlay.Apply(mapping.IncomeStatement(), mapping.BalanceSheet())
		if err != nil {
			return nil, err
		}
		opts = append(opts, extract.WithTables(income, balance))
	}
	return extract.New(opts...), nil
}
