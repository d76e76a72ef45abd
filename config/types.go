package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB      TMDBConfig       `mapstructure:"tmdb"`
	Fetch     FetchConfig      `mapstructure:"fetch"`
	Book      BookConfig       `mapstructure:"book"`
	Cache     CacheConfig      `mapstructure:"cache"`
	Logging   LoggingConfig    `mapstructure:"logging"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// FetchConfig controls catalog fetching
type FetchConfig struct {
	Region       string        `mapstructure:"region"`
	MaxPages     int           `mapstructure:"max_pages"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

// BookConfig controls the rendered book: output path, print variant and
// page geometry. All dimensions are millimeters.
type BookConfig struct {
	Output       string  `mapstructure:"output"`
	Variant      string  `mapstructure:"variant"` // kdp or standard
	PageCeiling  int     `mapstructure:"page_ceiling"`
	TrimWidth    float64 `mapstructure:"trim_width"`
	TrimHeight   float64 `mapstructure:"trim_height"`
	TopMargin    float64 `mapstructure:"top_margin"`
	BottomMargin float64 `mapstructure:"bottom_margin"`
	OuterMargin  float64 `mapstructure:"outer_margin"`
	GutterMargin float64 `mapstructure:"gutter_margin"`
}

// CacheConfig controls where catalog snapshots are written
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ProviderConfig is one entry of the provider priority list. List order is
// the order providers appear in the book.
type ProviderConfig struct {
	ID   int64  `mapstructure:"id"`
	Name string `mapstructure:"name"`
}
