package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// EvalMode selects how the inside/outside status of a report is determined.
type EvalMode string

const (
	// EvalClient trusts the inside_zone hint supplied by the reporting client.
	EvalClient EvalMode = "client"
	// EvalServer derives the status from the user's stored zone geometry and
	// the reported coordinates; the client hint is ignored.
	EvalServer EvalMode = "server"
)

// Config holds the runtime settings for the tracking backend.
type Config struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	EvalMode       EvalMode `yaml:"eval_mode"`

	// Rate limiting for the location-ingestion route, per client key.
	ReportRatePerSec float64 `yaml:"report_rate_per_sec"`
	ReportBurst      int     `yaml:"report_burst"`
}

// DefaultOrigins covers local dashboard development.
var DefaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
}

// Load builds the configuration. A YAML file (CONFIG_FILE, default
// config.yaml if present) supplies the base values; environment variables
// override it. Missing settings fall back to defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:             "5050",
		AllowedOrigins:   DefaultOrigins,
		EvalMode:         EvalClient,
		ReportRatePerSec: 10,
		ReportBurst:      20,
	}

	path := os.Getenv("CONFIG_FILE")
	optional := false
	if path == "" {
		path = "config.yaml"
		optional = true
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case optional && os.IsNotExist(err):
		// no config file, env + defaults only
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitOrigins(v)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("ZONE_EVAL_MODE"))); v != "" {
		cfg.EvalMode = EvalMode(v)
	}
	if v := os.Getenv("REPORT_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ReportRatePerSec = f
		}
	}
	if v := os.Getenv("REPORT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ReportBurst = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.EvalMode {
	case EvalClient, EvalServer:
	default:
		return fmt.Errorf("invalid eval mode %q (want %q or %q)", c.EvalMode, EvalClient, EvalServer)
	}
	if c.ReportRatePerSec <= 0 {
		return fmt.Errorf("report_rate_per_sec must be positive, got %v", c.ReportRatePerSec)
	}
	if c.ReportBurst <= 0 {
		return fmt.Errorf("report_burst must be positive, got %d", c.ReportBurst)
	}
	return nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}
