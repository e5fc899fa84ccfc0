package internal

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/burnote/internal/auth"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Summary SummaryConfig     `yaml:"summary"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Summary.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds the accepted credentials.
//
// Key is a single legacy credential; Keys is a list separated by ',' or '，'.
// Both are merged. An empty result rejects every request.
// With TenantIsolation each credential sees only its own notes.
type AuthConfig struct {
	Key             string `yaml:"key"`
	Keys            string `yaml:"keys"`
	TenantIsolation bool   `yaml:"tenant_isolation"`
}

// ParsedKeys returns the normalized key set.
func (c *AuthConfig) ParsedKeys() auth.Keys {
	return auth.ParseKeys(c.Key, c.Keys)
}

// SummaryConfig configures the OpenAI-compatible summarization endpoint.
// An empty Endpoint leaves summaries unavailable.
type SummaryConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled returns true when an endpoint is configured.
func (c *SummaryConfig) Enabled() bool {
	return c.Endpoint != ""
}

// Validate validates the summary configuration.
func (c *SummaryConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, is.URL),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Environment variables read by ApplyEnv.
const (
	EnvAdminKey  = "ADMIN_KEY"
	EnvAdminKeys = "ADMIN_KEYS"
	EnvAIAPIKey  = "AI_API_KEY"
)

// ApplyEnv copies secrets from the environment into c. It runs before the
// config file is read, so values set in the file take precedence.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvAdminKey); ok {
		c.Auth.Key = v
	}
	if v, ok := os.LookupEnv(EnvAdminKeys); ok {
		c.Auth.Keys = v
	}
	if v, ok := os.LookupEnv(EnvAIAPIKey); ok {
		c.Summary.APIKey = v
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./burnote.db",
		},
		Auth: AuthConfig{
			TenantIsolation: true,
		},
		Summary: SummaryConfig{
			Timeout: 30 * time.Second,
		},
	}
}
