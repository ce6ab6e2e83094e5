package types

import "time"

// DefaultEndpoint is the search endpoint used when none is configured.
const DefaultEndpoint = "http://localhost:8080/search"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout: a hung
	// search endpoint keeps the loading indicator visible until it answers.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "moviefinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the query dispatcher.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the search endpoint URL; the title is appended as the
	// "title" query parameter.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// ServeConfig holds settings for the web front.
type ServeConfig struct {
	// Addr is the listen address (default ":8090").
	Addr string `json:"addr" yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// HistoryConfig holds settings for the search history store.
type HistoryConfig struct {
	// Enabled turns on recording of every settled search.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "moviefinder.db").
	Path string `json:"path" yaml:"path"`
}

// LogConfig selects the log level ("debug", "info", "warn", "error") and
// format ("text" or "json").
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config groups all moviefinder settings.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
	History HistoryConfig `json:"history" yaml:"history"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
