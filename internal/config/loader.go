package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified"; Resolve fills them from Defaults.
type Config struct {
	Host        string  `json:"host" yaml:"host" toml:"host"`
	Port        int     `json:"port" yaml:"port" toml:"port"`
	ModelPath   string  `json:"model_path" yaml:"model_path" toml:"model_path"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	ContextSize int     `json:"context_size" yaml:"context_size" toml:"context_size"`
	Threads     int     `json:"threads" yaml:"threads" toml:"threads"`
	// LockWaitTimeout is a Go duration string ("250ms", "5s"). Empty or "0" waits indefinitely.
	LockWaitTimeout string     `json:"lock_wait_timeout" yaml:"lock_wait_timeout" toml:"lock_wait_timeout"`
	MaxBodyBytes    int64      `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel        string     `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat       string     `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORS            CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
}

// CORSConfig controls the optional CORS middleware.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	err := decodeFile(path, &cfg)
	return cfg, err
}

// decodeFile decodes the file at path into cfg. Keys absent from the file keep
// whatever cfg already holds.
func decodeFile(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	case ".json":
		err = json.Unmarshal(b, cfg)
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
