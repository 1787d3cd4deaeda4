package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// DefaultEnvFiles are the dotenv files [LoadEnv] reads when present, in order.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Client     ClientConfig     `toml:"client"`
	Server     ServerConfig     `toml:"server"`
	Summarizer SummarizerConfig `toml:"summarizer"`
	Database   DatabaseConfig   `toml:"database"`
	Cache      CacheConfig      `toml:"cache"`
}

// ClientConfig contains settings for the form's connection to the summarization service.
type ClientConfig struct {
	ServiceBaseURL string `toml:"service_base_url" env:"SKIM_SERVICE_BASE_URL"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"SKIM_CLIENT_TIMEOUT_SECONDS"`
}

// ServerConfig contains HTTP server settings for `skim serve`.
type ServerConfig struct {
	Host           string   `toml:"host" env:"SKIM_SERVER_HOST"`
	Port           int      `toml:"port" env:"SKIM_SERVER_PORT"`
	RateLimit      float64  `toml:"rate_limit" env:"SKIM_RATE_LIMIT"`
	RateBurst      int      `toml:"rate_burst" env:"SKIM_RATE_BURST"`
	AllowedOrigins []string `toml:"allowed_origins" env:"SKIM_ALLOWED_ORIGINS" envSeparator:","`
}

// SummarizerConfig selects and configures the language model provider.
type SummarizerConfig struct {
	Provider        string `toml:"provider" env:"SKIM_SUMMARIZER_PROVIDER"`
	Model           string `toml:"model" env:"SKIM_SUMMARIZER_MODEL"`
	BaseURL         string `toml:"base_url" env:"SKIM_SUMMARIZER_BASE_URL"`
	APIKey          string `toml:"api_key" env:"SKIM_SUMMARIZER_API_KEY"`
	MaxInputChars   int    `toml:"max_input_chars" env:"SKIM_MAX_INPUT_CHARS"`
	MaxOutputTokens int    `toml:"max_output_tokens" env:"SKIM_MAX_OUTPUT_TOKENS"`
	SystemPrompt    string `toml:"system_prompt" env:"SKIM_SYSTEM_PROMPT"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"SKIM_DATABASE_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CacheConfig controls how long summaries are reused by the service.
type CacheConfig struct {
	TTLHours                int    `toml:"ttl_hours" env:"SKIM_CACHE_TTL_HOURS"`
	MemoryEntriesTTLMinutes int    `toml:"memory_entries_ttl_minutes"`
	PruneSchedule           string `toml:"prune_schedule" env:"SKIM_CACHE_PRUNE_SCHEDULE"`
}

// providerKeyEnv maps provider names to the conventional API key variable each SDK documents.
var providerKeyEnv = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
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

// ResolveConfig loads the config file at path.
//
// A missing file yields [DefaultConfig] unless required is set, in which case it is [ErrMissingConfig].
func ResolveConfig(path string, required bool) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	return LoadConfig(path)
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

// LoadEnv loads any dotenv files that exist and then overlays environment variables onto config.
//
// Variables already set in the process environment win over dotenv values.
// When no summarizer key is configured, the provider's conventional variable (e.g. OPENROUTER_API_KEY) is used.
func LoadEnv(config *Config, files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}

	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return fmt.Errorf("failed to load env files: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if config.Summarizer.APIKey == "" {
		if name, ok := providerKeyEnv[config.Summarizer.Provider]; ok {
			config.Summarizer.APIKey = os.Getenv(name)
		}
	}

	return nil
}

// Validate reports the first structural problem with the configuration.
func (c *Config) Validate() error {
	if c.Client.ServiceBaseURL == "" {
		return fmt.Errorf("%w: client.service_base_url is required", ErrInvalidConfig)
	}
	if !isBaseURL(c.Client.ServiceBaseURL) {
		return fmt.Errorf("%w: client.service_base_url %q needs a scheme and host", ErrInvalidConfig, c.Client.ServiceBaseURL)
	}
	if c.Client.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: client.timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("%w: server rate limits must not be negative", ErrInvalidConfig)
	}
	if _, ok := providerKeyEnv[c.Summarizer.Provider]; !ok {
		return fmt.Errorf("%w: unknown summarizer provider %q", ErrInvalidConfig, c.Summarizer.Provider)
	}
	if c.Summarizer.MaxInputChars <= 0 {
		return fmt.Errorf("%w: summarizer.max_input_chars must be positive", ErrInvalidConfig)
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("%w: cache.ttl_hours must not be negative", ErrInvalidConfig)
	}
	return nil
}

func isBaseURL(s string) bool {
	if strings.TrimSpace(s) != s {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
