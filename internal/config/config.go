package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/sherlock/internal/admission"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Admission report searched by /api/admission-search.
	DataFile string

	// PDF
	PDFFallbackPdftotext bool

	// Search stats rolling window.
	StatsWindow time.Duration

	// Optional YAML file overriding search tuning.
	SearchConfigPath string

	Search admission.Options
}

// searchFile is the on-disk shape of SEARCH_CONFIG. Absent keys keep
// their defaults.
type searchFile struct {
	ContextWindow *int      `yaml:"context_window"`
	MinQueryLen   *int      `yaml:"min_query_len"`
	ExtendBelow   *int      `yaml:"extend_below"`
	RescanBelow   *int      `yaml:"rescan_below"`
	KnownNames    *[]string `yaml:"known_names"`
	FallbackTerms *[]string `yaml:"fallback_terms"`
}

// Load reads configuration from the environment and, when SEARCH_CONFIG
// is set, from the search tuning file it names.
func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DataFile: envOr("DATA_FILE", "app/data.txt"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		SearchConfigPath: os.Getenv("SEARCH_CONFIG"),

		Search: admission.DefaultOptions(),
	}
	cfg.Search.ContextWindow = envInt("CONTEXT_WINDOW", cfg.Search.ContextWindow)
	cfg.Search.MinQueryLen = envInt("MIN_QUERY_LEN", cfg.Search.MinQueryLen)

	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	if cfg.SearchConfigPath != "" {
		if err := cfg.loadSearchFile(cfg.SearchConfigPath); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (c *Config) loadSearchFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read search config: %w", err)
	}
	var f searchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse search config %s: %w", path, err)
	}
	if f.ContextWindow != nil {
		c.Search.ContextWindow = *f.ContextWindow
	}
	if f.MinQueryLen != nil {
		c.Search.MinQueryLen = *f.MinQueryLen
	}
	if f.ExtendBelow != nil {
		c.Search.ExtendBelow = *f.ExtendBelow
	}
	if f.RescanBelow != nil {
		c.Search.RescanBelow = *f.RescanBelow
	}
	if f.KnownNames != nil {
		c.Search.KnownNames = *f.KnownNames
	}
	if f.FallbackTerms != nil {
		c.Search.FallbackTerms = *f.FallbackTerms
	}
	return nil
}

func (c Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("DATA_FILE is required")
	}
	if c.Search.ContextWindow <= 0 {
		return fmt.Errorf("context window must be positive, got %d", c.Search.ContextWindow)
	}
	if c.Search.MinQueryLen <= 0 {
		return fmt.Errorf("minimum query length must be positive, got %d", c.Search.MinQueryLen)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
