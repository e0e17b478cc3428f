// Package config loads the optional user settings file and the .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abhisek/interviewx/internal/conversation"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the settings file. Zero values mean "use the default".
type Config struct {
	Language      string `yaml:"language"`
	DBPath        string `yaml:"db_path"`
	LogLevel      string `yaml:"log_level"`
	TestThreshold int    `yaml:"test_threshold"`

	// LastInterview pre-fills the start form.
	LastInterview *conversation.Params `yaml:"last_interview,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() *Config {
	return &Config{
		Language: language.Default,
		LogLevel: zerolog.InfoLevel.String(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/interviewx/config.yaml, or
// INTERVIEWX_CONFIG when set.
func DefaultPath() (string, error) {
	if p := os.Getenv("INTERVIEWX_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "interviewx", "config.yaml"), nil
}

// Load reads the settings file at path. A missing file yields Defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate checks the language code, the log level and the threshold.
func (c *Config) Validate() error {
	var errs []error
	if c.Language != "" {
		if _, ok := language.Lookup(c.Language); !ok {
			errs = append(errs, fmt.Errorf("unknown language %q", c.Language))
		}
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if c.TestThreshold < 0 {
		errs = append(errs, errors.New("test_threshold must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadDotEnv loads environment variables from the given .env files, or
// from ./.env when none are given. Missing files are ignored and variables
// already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
