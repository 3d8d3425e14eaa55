package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"textgate/internal/common/fsutil"
)

// Environment variables read by ApplyEnv.
const (
	EnvModelPath = "MODEL_PATH"
	EnvPort      = "PORT"
	EnvHost      = "HOST"
	EnvLogLevel  = "TEXTGATE_LOG_LEVEL"
	EnvLogFormat = "TEXTGATE_LOG_FORMAT"
	EnvLockWait  = "TEXTGATE_LOCK_WAIT_TIMEOUT"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            5000,
		ModelPath:       "./models/gemma-3n-E2B-it-Q4_K_M.gguf",
		MaxTokens:       256,
		Temperature:     0.5,
		ContextSize:     2048,
		Threads:         4,
		LockWaitTimeout: "0",
		MaxBodyBytes:    1 << 20,
		LogLevel:        "info",
		LogFormat:       "json",
		CORS: CORSConfig{
			Methods: []string{"GET", "POST", "OPTIONS"},
			Headers: []string{"Content-Type", "X-Log-Level"},
		},
	}
}

// Resolve builds the effective configuration: defaults, then the file at path
// (skipped when empty), then the environment. Flags are applied by the caller
// on top of the result and followed by Validate.
func Resolve(path string, lookup LookupFunc) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// ApplyEnv overlays the recognised environment variables onto c.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvModelPath); ok && v != "" {
		c.ModelPath = v
	}
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		p, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		c.Port = p
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLockWait); ok && v != "" {
		c.LockWaitTimeout = v
	}
	return nil
}

// Validate checks every field and expands a leading "~" in ModelPath.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be in 1..65535, got %d", c.Port))
	}
	if strings.TrimSpace(c.ModelPath) == "" {
		errs = append(errs, errors.New("model_path must not be empty"))
	} else if p, err := fsutil.ExpandHome(c.ModelPath); err != nil {
		errs = append(errs, fmt.Errorf("model_path: %w", err))
	} else {
		c.ModelPath = p
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens))
	}
	if c.Temperature <= 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be in (0,2], got %g", c.Temperature))
	}
	if c.ContextSize <= 0 {
		errs = append(errs, fmt.Errorf("context_size must be positive, got %d", c.ContextSize))
	}
	if c.Threads <= 0 {
		errs = append(errs, fmt.Errorf("threads must be positive, got %d", c.Threads))
	}
	if _, err := c.LockWait(); err != nil {
		errs = append(errs, err)
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be one of debug|info|warn|error, got %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log_format must be json or console, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// LockWait parses LockWaitTimeout. Empty means no limit.
func (c Config) LockWait() (time.Duration, error) {
	s := strings.TrimSpace(c.LockWaitTimeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("lock_wait_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("lock_wait_timeout must not be negative, got %s", d)
	}
	return d, nil
}

// Addr returns the listen address host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
