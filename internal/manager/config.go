package manager

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxTokens   = 256
	defaultTemperature = 0.5
	defaultContextSize = 2048
	defaultThreads     = 4
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	ModelPath   string
	MaxTokens int
	// Temperature must be positive; zero selects the 0.5 default.
	Temperature float64
	// Runtime options handed to the default llama adapter.
	ContextSize int
	Threads     int
	// MaxWait bounds how long Generate waits for the model lock. Zero waits indefinitely.
	MaxWait time.Duration
	// Adapter overrides the runtime binding; nil selects the llama adapter.
	Adapter   InferenceAdapter
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := newManager(cfg.ModelPath)
	// Apply defaults if unset
	m.params = InferParams{MaxTokens: cfg.MaxTokens, Temperature: float32(cfg.Temperature)}
	if m.params.MaxTokens <= 0 {
		m.params.MaxTokens = defaultMaxTokens
	}
	if m.params.Temperature <= 0 {
		m.params.Temperature = defaultTemperature
	}
	if cfg.MaxWait > 0 {
		m.maxWait = cfg.MaxWait
	}
	ctxSize, threads := cfg.ContextSize, cfg.Threads
	if ctxSize <= 0 {
		ctxSize = defaultContextSize
	}
	if threads <= 0 {
		threads = defaultThreads
	}
	if cfg.Adapter != nil {
		m.adapter = cfg.Adapter
	} else {
		m.adapter = NewLlamaAdapter(ctxSize, threads)
	}
	if cfg.Publisher != nil {
		m.publisher = cfg.Publisher
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	return m
}
