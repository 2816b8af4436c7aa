// internal/config/types.go
package config

import "time"

// Config is the root configuration for the proxy.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	CDN     CDNConfig     `yaml:"cdn"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the inbound HTTP listener.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SourceConfig configures the upstream video site.
type SourceConfig struct {
	// BaseURL is the scheme+host of the scrape target. Required.
	BaseURL string `yaml:"base_url"`
	// UserAgent overrides the browser-like default sent upstream.
	UserAgent string `yaml:"user_agent"`
	// SearchTimeout bounds one search-page fetch.
	SearchTimeout time.Duration `yaml:"search_timeout"`
	// DetailsTimeout bounds one detail-page fetch.
	DetailsTimeout time.Duration `yaml:"details_timeout"`
	// RateLimit is the outbound request budget in requests per second.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// CDNConfig identifies the media host whose URLs need character escaping.
type CDNConfig struct {
	Host string `yaml:"host"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}
