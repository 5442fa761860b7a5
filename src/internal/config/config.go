package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Variants of the catalog response format.
const (
	VariantJSON = "json"
	VariantXML  = "xml"
)

// DefaultBaseURL is the catalog's API root.
const DefaultBaseURL = "http://www.aladin.co.kr/ttb/api"

// Config is everything a source needs; it is passed in at construction.
type Config struct {
	APIKey            string        `yaml:"api_key" env:"ALADIN_TTB_KEY"`
	Variant           string        `yaml:"variant" env:"ALADIN_VARIANT" env-default:"json"`
	BaseURL           string        `yaml:"base_url" env:"ALADIN_BASE_URL" env-default:"http://www.aladin.co.kr/ttb/api"`
	Timeout           time.Duration `yaml:"timeout" env:"ALADIN_TIMEOUT" env-default:"30s"`
	MaxResults        int           `yaml:"max_results" env:"ALADIN_MAX_RESULTS" env-default:"10"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"ALADIN_RPS" env-default:"0"`
	UserAgent         string        `yaml:"user_agent" env:"ALADIN_USER_AGENT"`
	LogLevel          string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads .env files, then the YAML file at path (skipped when absent),
// then the environment. Existing environment variables are never overridden
// by .env files.
func Load(path string) (Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var cfg Config
	path = strings.TrimSpace(path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, cfg.Validate()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges. A missing API key is allowed; the catalog
// rejects the request and the source reports no results.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantJSON, VariantXML:
	default:
		return fmt.Errorf("invalid variant %q (want %s or %s)", c.Variant, VariantJSON, VariantXML)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxResults < 0 {
		return errors.New("max_results must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("requests_per_second must not be negative")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url is required")
	}
	return nil
}

// Usage describes the environment variables Load understands.
func Usage() string {
	var cfg Config
	s, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return s
}
