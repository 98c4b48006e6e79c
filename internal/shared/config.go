package shared

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables read by [Config.ApplyEnv].
const (
	EnvYouTubeAPIKey = "YOUTUBE_API_KEY"
	EnvAddr          = "SONGRANK_ADDR"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	YouTube  YouTubeConfig  `toml:"youtube"`
	Bandcamp BandcampConfig `toml:"bandcamp"`
	Upstream UpstreamConfig `toml:"upstream"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`

	addr string
}

// YouTubeConfig contains YouTube Data API settings.
type YouTubeConfig struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	MaxPages          int     `toml:"max_pages"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// BandcampConfig contains Bandcamp scraping settings.
type BandcampConfig struct {
	UserAgent string `toml:"user_agent"`
}

// UpstreamConfig contains settings shared by all upstream clients.
type UpstreamConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration values with those found through lookup, usually [os.LookupEnv].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if key, ok := lookup(EnvYouTubeAPIKey); ok && key != "" {
		c.YouTube.APIKey = key
	}
	if addr, ok := lookup(EnvAddr); ok && addr != "" {
		c.Server.addr = addr
	}
}

// Validate reports configuration the service cannot start without.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, EnvYouTubeAPIKey)
	}
	if c.YouTube.BaseURL == "" {
		return fmt.Errorf("%w: youtube.base_url is empty", ErrInvalidConfig)
	}
	if c.YouTube.MaxPages <= 0 {
		return fmt.Errorf("%w: youtube.max_pages must be positive", ErrInvalidConfig)
	}
	return nil
}

// Addr returns the listen address, preferring an override from the environment.
func (c *Config) Addr() string {
	if c.Server.addr != "" {
		return c.Server.addr
	}
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SetAddr overrides the listen address.
func (c *Config) SetAddr(addr string) {
	c.Server.addr = addr
}

// UpstreamTimeout returns the per-call upstream timeout. Zero disables it.
func (c *Config) UpstreamTimeout() time.Duration {
	if c.Upstream.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}
