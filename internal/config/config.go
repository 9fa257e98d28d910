package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"watchchart/internal/catalog"
	"watchchart/internal/timeconv"
)

// Environment variables that override the YAML file.
const (
	EnvIdentifiers   = "WATCHCHART_IDENTIFIERS"
	EnvAggregatorURL = "WATCHCHART_AGGREGATOR_URL"
	EnvListenAddr    = "WATCHCHART_LISTEN_ADDR"
	EnvTimezone      = "WATCHCHART_TIMEZONE"
)

// Config represents configuration data for the dashboard service.
type Config struct {
	ListenAddr            string  `yaml:"listen_addr"`
	AggregatorBaseURL     string  `yaml:"aggregator_base_url"`
	SegmentsPath          string  `yaml:"segments_path"`
	Identifiers           *string `yaml:"identifiers"`
	FallbackIdentifier    string  `yaml:"fallback_identifier"`
	DisplayTimezone       string  `yaml:"display_timezone"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
	LiveRefreshSeconds    int     `yaml:"live_refresh_seconds"`
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		ListenAddr:         ":8080",
		AggregatorBaseURL:  "http://localhost:8081",
		SegmentsPath:       "/api/v1/video/watch-segments",
		FallbackIdentifier: "BV1rT9EYbEJa",
		DisplayTimezone:    "Local",
		LiveRefreshSeconds: 60,
	}
}

// Load reads configuration from a yaml file, then applies .env and
// environment overrides. A missing file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// A missing .env is not an error; existing variables win over it.
	_ = godotenv.Load()
	applyEnv(&cfg)

	defaults := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if cfg.SegmentsPath == "" {
		cfg.SegmentsPath = defaults.SegmentsPath
	}
	if cfg.FallbackIdentifier == "" {
		cfg.FallbackIdentifier = defaults.FallbackIdentifier
	}
	if cfg.DisplayTimezone == "" {
		cfg.DisplayTimezone = defaults.DisplayTimezone
	}
	if cfg.LiveRefreshSeconds <= 0 {
		cfg.LiveRefreshSeconds = defaults.LiveRefreshSeconds
	}
	if cfg.RequestTimeoutSeconds < 0 {
		cfg.RequestTimeoutSeconds = 0
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvIdentifiers); ok {
		cfg.Identifiers = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAggregatorURL)); v != "" {
		cfg.AggregatorBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListenAddr)); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimezone)); v != "" {
		cfg.DisplayTimezone = v
	}
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AggregatorBaseURL) == "" {
		return errors.New("aggregator_base_url is required")
	}
	u, err := url.Parse(c.AggregatorBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("aggregator_base_url %q is not an absolute URL", c.AggregatorBaseURL)
	}
	if _, ok := timeconv.LocationFor(c.DisplayTimezone); !ok {
		return fmt.Errorf("display_timezone %q is not a known timezone", c.DisplayTimezone)
	}
	return nil
}

// Catalog builds the identifier catalog from the configured list.
func (c Config) Catalog() catalog.Catalog {
	return catalog.Parse(c.Identifiers, c.FallbackIdentifier)
}

// Location resolves the display timezone.
func (c Config) Location() *time.Location {
	loc, _ := timeconv.LocationFor(c.DisplayTimezone)
	return loc
}

// RequestTimeout is the per-fetch bound; zero means none.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LiveRefresh is the push interval of live views.
func (c Config) LiveRefresh() time.Duration {
	return time.Duration(c.LiveRefreshSeconds) * time.Second
}
