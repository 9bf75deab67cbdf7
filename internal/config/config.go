// Package config loads server settings.
//
// Precedence: defaults, then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Commands CommandsConfig `yaml:"commands"`
	Database DatabaseConfig `yaml:"database"`
	Share    ShareConfig    `yaml:"share"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	PublicURL       string        `yaml:"public_url"`
	StaticDir       string        `yaml:"static_dir"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// OpenAIConfig configures the language model used by /api/actions.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// CommandsConfig selects where chat pipelines send messages. An empty
// ServiceURL means the in-process command service.
type CommandsConfig struct {
	ServiceURL string `yaml:"service_url"`
}

// DatabaseConfig enables the PostgreSQL catalog when URL is set.
type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	ConnectRetries int           `yaml:"connect_retries"`
	RetryInterval  time.Duration `yaml:"retry_interval"`
}

// ShareConfig configures share links. Sharing is disabled without a secret.
type ShareConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			PublicURL:       "http://localhost:5173",
			StaticDir:       "./web/dist",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com",
			Model:   "gpt-4o-mini",
		},
		Database: DatabaseConfig{
			ConnectRetries: 10,
			RetryInterval:  3 * time.Second,
		},
		Share: ShareConfig{
			TTL: 7 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// CONFIG_PATH is consulted; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"OPENAI_BASE_URL":     &c.OpenAI.BaseURL,
		"OPENAI_MODEL":        &c.OpenAI.Model,
		"DATABASE_URL":        &c.Database.URL,
		"SHARE_SECRET":        &c.Share.Secret,
		"PUBLIC_URL":          &c.Server.PublicURL,
		"STATIC_DIR":          &c.Server.StaticDir,
		"COMMAND_SERVICE_URL": &c.Commands.ServiceURL,
		"LOG_LEVEL":           &c.Log.Level,
		"LOG_FORMAT":          &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("SHARE_TTL"); ok {
		ttl, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid SHARE_TTL %q: %w", v, err)
		}
		c.Share.TTL = ttl
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Share.TTL < 0 {
		errs = append(errs, fmt.Errorf("share.ttl must not be negative"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
