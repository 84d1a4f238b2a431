// Package config loads flashmaster settings from a TOML file, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/abhisek/flashmaster/internal/llm"
	"github.com/abhisek/flashmaster/internal/store"
)

// Config is the on-disk configuration. API keys never appear here; they
// come from the environment.
type Config struct {
	Store StoreConfig `toml:"store"`
	LLM   LLMConfig   `toml:"llm"`
	Log   LogConfig   `toml:"log"`
}

type StoreConfig struct {
	Path string `toml:"path"` // SQLite file; empty uses the data directory
}

type LLMConfig struct {
	Provider    string `toml:"provider"` // gemini, openai, anthropic; empty discovers from API keys
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url"` // OpenAI-compatible endpoint
	Timeout     string `toml:"timeout"`  // e.g. "60s"
	MaxAttempts int    `toml:"max_attempts"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty uses flashmaster.log in the data directory
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Timeout:     llm.DefaultTimeout.String(),
			MaxAttempts: llm.DefaultRetryConfig().MaxAttempts,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/flashmaster/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "flashmaster", "config.toml"), nil
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays FLASHMASTER_* variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"FLASHMASTER_DB", &c.Store.Path},
		{"FLASHMASTER_LLM_PROVIDER", &c.LLM.Provider},
		{"FLASHMASTER_LLM_MODEL", &c.LLM.Model},
		{"FLASHMASTER_LLM_BASE_URL", &c.LLM.BaseURL},
		{"FLASHMASTER_LOG_LEVEL", &c.Log.Level},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks values that would otherwise fail later at use.
func (c *Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.LLM.MaxAttempts < 0 {
		return fmt.Errorf("llm.max_attempts cannot be negative: %d", c.LLM.MaxAttempts)
	}
	// The mock provider is only built by tests.
	switch c.LLM.Provider {
	case "", llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}

// Timeout parses llm.timeout, defaulting to llm.DefaultTimeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.LLM.Timeout == "" {
		return llm.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid llm.timeout %q: %w", c.LLM.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("llm.timeout must be positive: %s", c.LLM.Timeout)
	}
	return d, nil
}

// DBPath returns the configured database path or the default one.
func (c *Config) DBPath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, store.EnsureDir(c.Store.Path)
	}
	return store.DefaultDBPath()
}

// LogPath returns the configured log file or flashmaster.log in the data
// directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flashmaster.log"), nil
}

// Save writes c to path as TOML, creating the directory.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
