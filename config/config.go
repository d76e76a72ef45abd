package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. A missing config file is not an
// error unless an explicit path was given; defaults cover a full run.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// TMDB API key may come from the environment
	v.BindEnv("tmdb.api_key", "TMDB_API_KEY")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".showbook"))
		}

		// Check /etc
		v.AddConfigPath("/etc/showbook/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")

	// Fetch defaults. TMDB caps discover results at 500 pages per query;
	// the delay keeps us around 4 req/s, under the published 40/10s quota.
	v.SetDefault("fetch.region", "US")
	v.SetDefault("fetch.max_pages", 500)
	v.SetDefault("fetch.request_delay", 260*time.Millisecond)

	// Book defaults: KDP 6x9in trim with a mirrored gutter, 828-page
	// print-service ceiling.
	v.SetDefault("book.output", "showbook.pdf")
	v.SetDefault("book.variant", "kdp")
	v.SetDefault("book.page_ceiling", 828)
	v.SetDefault("book.trim_width", 152.4)
	v.SetDefault("book.trim_height", 228.6)
	v.SetDefault("book.top_margin", 16.0)
	v.SetDefault("book.bottom_margin", 16.0)
	v.SetDefault("book.outer_margin", 12.7)
	v.SetDefault("book.gutter_margin", 19.05)

	// Cache defaults
	v.SetDefault("cache.dir", ".")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Major US streaming providers (TMDB watch provider IDs), in book order
	v.SetDefault("providers", []map[string]interface{}{
		{"id": 8, "name": "Netflix"},
		{"id": 9, "name": "Amazon Prime Video"},
		{"id": 337, "name": "Disney+"},
		{"id": 15, "name": "Hulu"},
		{"id": 384, "name": "Max"},
		{"id": 350, "name": "Apple TV+"},
		{"id": 386, "name": "Peacock"},
		{"id": 531, "name": "Paramount+"},
	})
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Fetch.MaxPages < 1 {
		return fmt.Errorf("fetch.max_pages must be at least 1")
	}

	if cfg.Fetch.RequestDelay < 0 {
		return fmt.Errorf("fetch.request_delay must not be negative")
	}

	if cfg.Book.Variant != "kdp" && cfg.Book.Variant != "standard" {
		return fmt.Errorf("invalid book variant: %s (must be 'kdp' or 'standard')", cfg.Book.Variant)
	}

	if cfg.Book.TrimWidth <= 0 || cfg.Book.TrimHeight <= 0 {
		return fmt.Errorf("book trim dimensions must be positive")
	}

	if cfg.Book.TopMargin+cfg.Book.BottomMargin >= cfg.Book.TrimHeight {
		return fmt.Errorf("book margins leave no vertical space on the page")
	}

	if cfg.Book.OuterMargin+cfg.Book.GutterMargin >= cfg.Book.TrimWidth {
		return fmt.Errorf("book margins leave no horizontal space on the page")
	}

	if len(cfg.Providers) == 0 {
		return fmt.Errorf("at least one provider is required")
	}
	for _, p := range cfg.Providers {
		if p.ID <= 0 {
			return fmt.Errorf("provider %q has invalid id %d", p.Name, p.ID)
		}
		if p.Name == "" {
			return fmt.Errorf("provider id %d has no name", p.ID)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
