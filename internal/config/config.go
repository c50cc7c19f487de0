// Package config provides configuration loading and validation for the pipeline harness.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/career-pipeline/internal/advisor"
	"github.com/jonathan/career-pipeline/internal/report"
)

// Default values used when neither the config file nor the environment sets a field.
const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultReportPath   = report.DefaultPath
	DefaultChatQuestion = advisor.DefaultQuestion
	DefaultShortTimeout = 10 * time.Second
	DefaultLongTimeout  = 120 * time.Second
	DefaultChatTimeout  = 60 * time.Second
	DefaultSettleDelay  = 2 * time.Second
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigPath   = "PIPELINE_CONFIG"
	EnvBaseURL      = "PIPELINE_BASE_URL"
	EnvReportPath   = "PIPELINE_REPORT_PATH"
	EnvUsername     = "PIPELINE_USERNAME"
	EnvPassword     = "PIPELINE_PASSWORD"
	EnvChatQuestion = "PIPELINE_CHAT_QUESTION"
	EnvShortTimeout = "PIPELINE_SHORT_TIMEOUT"
	EnvLongTimeout  = "PIPELINE_LONG_TIMEOUT"
	EnvChatTimeout  = "PIPELINE_CHAT_TIMEOUT"
	EnvSettleDelay  = "PIPELINE_SETTLE_DELAY"
	EnvRateLimitRPS = "PIPELINE_RATE_LIMIT_RPS"
	EnvVerbose      = "PIPELINE_VERBOSE"
	EnvDatabaseURL  = "DATABASE_URL"
)

// Config is the harness configuration. It can be loaded from a YAML file and overridden by
// environment variables.
type Config struct {
	// Backend root URL and the report destination.
	BaseURL    string `yaml:"base_url" validate:"required,url"`
	ReportPath string `yaml:"report_path" validate:"required"`

	// Test identity. A username is generated and the password defaults to test123 when empty.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	Question string `yaml:"chat_question" validate:"required"`

	// ShortTimeout covers register, login and favorites; LongTimeout covers extraction and
	// job search.
	ShortTimeout time.Duration `yaml:"short_timeout" validate:"gt=0"`
	LongTimeout  time.Duration `yaml:"long_timeout" validate:"gt=0"`
	ChatTimeout  time.Duration `yaml:"chat_timeout" validate:"gt=0"`
	SettleDelay  time.Duration `yaml:"settle_delay" validate:"gte=0"`

	// RateLimitRPS paces outgoing requests; 0 disables pacing.
	RateLimitRPS float64 `yaml:"rate_limit_rps" validate:"gte=0"`
	Verbose      bool    `yaml:"verbose,omitempty"`

	// DatabaseURL enables the run history store when set.
	DatabaseURL string `yaml:"database_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		ReportPath:   DefaultReportPath,
		Question:     DefaultChatQuestion,
		ShortTimeout: DefaultShortTimeout,
		LongTimeout:  DefaultLongTimeout,
		ChatTimeout:  DefaultChatTimeout,
		SettleDelay:  DefaultSettleDelay,
	}
}

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the file named by PIPELINE_CONFIG,
// then environment overrides. The result is validated.
func Load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigPath); path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.ReportPath == "" {
		result.ReportPath = defaults.ReportPath
	}
	if result.Username == "" {
		result.Username = defaults.Username
	}
	if result.Password == "" {
		result.Password = defaults.Password
	}
	if result.Question == "" {
		result.Question = defaults.Question
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.ShortTimeout == 0 {
		result.ShortTimeout = defaults.ShortTimeout
	}
	if result.LongTimeout == 0 {
		result.LongTimeout = defaults.LongTimeout
	}
	if result.ChatTimeout == 0 {
		result.ChatTimeout = defaults.ChatTimeout
	}
	if result.SettleDelay == 0 {
		result.SettleDelay = defaults.SettleDelay
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}

	// Bool fields cannot distinguish unset from false; a file that sets verbose wins.
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// ApplyEnv overrides fields from environment variables that are set and non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setString(EnvBaseURL, &c.BaseURL)
	setString(EnvReportPath, &c.ReportPath)
	setString(EnvUsername, &c.Username)
	setString(EnvPassword, &c.Password)
	setString(EnvChatQuestion, &c.Question)
	setString(EnvDatabaseURL, &c.DatabaseURL)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvShortTimeout, &c.ShortTimeout},
		{EnvLongTimeout, &c.LongTimeout},
		{EnvChatTimeout, &c.ChatTimeout},
		{EnvSettleDelay, &c.SettleDelay},
	}
	for _, d := range durations {
		v := strings.TrimSpace(getenv(d.key))
		if v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v := strings.TrimSpace(getenv(EnvRateLimitRPS)); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRateLimitRPS, err)
		}
		c.RateLimitRPS = rps
	}

	if v := strings.TrimSpace(getenv(EnvVerbose)); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbose, err)
		}
		c.Verbose = verbose
	}

	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// parseDuration accepts Go duration strings ("90s", "2m") or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(v)
}
