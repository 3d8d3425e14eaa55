package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"textgate/internal/common/fsutil"
)

// Initialize loads the model asset and swaps the new handle in. It is safe to
// call repeatedly; concurrent callers join the initialization already in flight
// and share its operation id and result.
//
// Readiness is cleared as soon as an initialization starts, so Generate answers
// ErrNotReady until it completes. A generation already holding the model lock
// finishes on the previous handle, which is closed once the attempt resolves.
// A failed attempt leaves no handle behind.
func (m *Manager) Initialize(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err, _ := m.loads.Do("initialize", func() (any, error) {
		return m.initialize()
	})
	op, _ := v.(string)
	return op, err
}

// Start runs Initialize in the background. The returned channel is closed once
// the attempt resolves; callers are free to ignore it.
func (m *Manager) Start() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Initialize(context.Background())
	}()
	return done
}

// initialize runs detached from any caller context; waiting for the model lock
// cannot fail, only take as long as the generation holding it.
func (m *Manager) initialize() (string, error) {
	op := uuid.NewString()
	m.mu.Lock()
	m.state = StateLoading
	m.err = ""
	m.lastOp = op
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "load_start", OpID: op, Fields: map[string]any{"path": m.modelPath}})

	adapter := m.currentAdapter()
	if adapter == nil || !adapter.Available() {
		m.log.Error().Str("op", op).Msg("cannot initialize model: model runtime not available")
		return op, m.fail(op, ErrDependencyUnavailable("model runtime not available on this system"))
	}
	if !fsutil.PathExists(m.modelPath) {
		m.log.Error().Str("op", op).Str("path", m.modelPath).Msg("model file not found")
		return op, m.fail(op, ErrModelAssetMissing(m.modelPath))
	}

	m.log.Info().Str("op", op).Str("path", m.modelPath).
		Int("max_tokens", m.params.MaxTokens).
		Float32("temperature", m.params.Temperature).
		Msg("loading model")
	start := time.Now()
	sess, err := startSession(adapter, m.modelPath, m.params)
	if err != nil {
		m.log.Error().Str("op", op).Err(err).Msg("error initializing model")
		return op, m.fail(op, ErrModelLoad(m.modelPath, err))
	}
	sizeMB := fsutil.SizeMB(m.modelPath)

	m.lockModel()
	prev := m.session
	m.session = sess
	if prev != nil {
		_ = prev.Close()
	}
	m.mu.Lock()
	m.state = StateReady
	m.err = ""
	m.modelSizeMB = sizeMB
	m.loadedAt = time.Now()
	m.loadsTotal++
	m.mu.Unlock()
	m.gen.Release(1)

	dur := time.Since(start)
	m.log.Info().Str("op", op).Dur("dur", dur).Int("size_mb", sizeMB).Msg("model loaded successfully")
	m.publisher.Publish(Event{Name: "load_done", OpID: op, Fields: map[string]any{"duration_ms": dur.Milliseconds(), "size_mb": sizeMB}})
	return op, nil
}

// fail clears the handle and records cause as the lifecycle error.
func (m *Manager) fail(op string, cause error) error {
	m.lockModel()
	if m.session != nil {
		_ = m.session.Close()
		m.session = nil
	}
	m.gen.Release(1)
	m.mu.Lock()
	m.state = StateFailed
	m.err = cause.Error()
	m.loadFailuresTotal++
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "load_failed", OpID: op, Fields: map[string]any{"error": cause.Error()}})
	return cause
}

// lockModel takes the model lock without a deadline.
func (m *Manager) lockModel() {
	_ = m.gen.Acquire(context.Background(), 1)
}

// startSession calls the adapter and converts a panic into an error.
func startSession(a InferenceAdapter, path string, params InferParams) (sess InferSession, err error) {
	defer func() {
		if r := recover(); r != nil {
			sess = nil
			err = fmt.Errorf("adapter panic: %v", r)
		}
	}()
	sess, err = a.Start(path, params)
	if err == nil && sess == nil {
		err = fmt.Errorf("adapter returned no session")
	}
	return sess, err
}
