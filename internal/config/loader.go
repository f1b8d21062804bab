package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"genrelay/internal/common/fsutil"
	"genrelay/internal/gemini"
)

const (
	DefaultAddr           = ":3000"
	DefaultMaxBodyBytes   = int64(1 << 20)
	DefaultMaxUploadBytes = int64(32 << 20)
	DefaultEnvFile        = ".env"

	envPrefix = "GENRELAY_"
)

// CORSConfig controls cross-origin access.
type CORSConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled" env:"ENABLED"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods" env:"ALLOWED_METHODS"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers" env:"ALLOWED_HEADERS"`
}

// Config holds runtime parameters for the service.
type Config struct {
	Addr   string          `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	APIKey string          `json:"api_key" yaml:"api_key" toml:"api_key" env:"API_KEY"`
	Models gemini.ModelSet `json:"models" yaml:"models" toml:"models" envPrefix:"MODEL_"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`

	MaxBodyBytes   int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	// Zero means inference calls run until the provider answers.
	RequestTimeoutSeconds int64 `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds" env:"REQUEST_TIMEOUT_SECONDS"`

	CORS    CORSConfig `json:"cors" yaml:"cors" toml:"cors" envPrefix:"CORS_"`
	Swagger bool       `json:"swagger" yaml:"swagger" toml:"swagger" env:"SWAGGER"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Addr:           DefaultAddr,
		Models:         gemini.DefaultModels(),
		LogLevel:       "info",
		LogFormat:      "json",
		MaxBodyBytes:   DefaultMaxBodyBytes,
		MaxUploadBytes: DefaultMaxUploadBytes,
		CORS: CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
			AllowedHeaders: []string{"*"},
		},
	}
}

// Load reads a configuration file over Defaults based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	if err := loadFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	return nil
}

// Sources names where Resolve reads configuration from.
type Sources struct {
	// Optional config file.
	File string
	// Dotenv file. A missing DefaultEnvFile is ignored; any other missing file is an error.
	EnvFile string
}

// Resolve layers defaults, the config file, the dotenv file and the process
// environment, in increasing precedence. GEMINI_API_KEY is honored when
// GENRELAY_API_KEY is unset.
func Resolve(src Sources) (Config, error) {
	cfg := Defaults()
	if src.File != "" {
		path, err := fsutil.ExpandHome(src.File)
		if err != nil {
			return cfg, err
		}
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if src.EnvFile != "" && (src.EnvFile != DefaultEnvFile || fsutil.IsRegularFile(src.EnvFile)) {
		path, err := fsutil.ExpandHome(src.EnvFile)
		if err != nil {
			return cfg, err
		}
		if err := godotenv.Load(path); err != nil {
			return cfg, fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces unusable values with defaults.
func (c *Config) Normalize() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	c.Models = c.Models.WithDefaults()
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.RequestTimeoutSeconds < 0 {
		c.RequestTimeoutSeconds = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}
