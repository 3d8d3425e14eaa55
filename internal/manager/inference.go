package manager

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generate wraps prompt in the safety template and runs it through the model
// while holding the exclusive model lock.
//
// ctx bounds only the wait for the lock. Once the lock is held the runtime call
// runs to completion even if the caller goes away.
func (m *Manager) Generate(ctx context.Context, prompt string) (string, error) {
	if !m.RuntimeAvailable() {
		return "", ErrDependencyUnavailable("model runtime not available on this system")
	}
	if !m.Ready() {
		return "", ErrNotReady
	}
	wrapped := WrapPrompt(prompt)

	release, err := m.acquireModel(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	// A reload may have started between the readiness check and the lock.
	sess := m.session
	if sess == nil || !m.Ready() {
		return "", ErrNotReady
	}

	start := time.Now()
	final, err := generateSafely(context.WithoutCancel(ctx), sess, wrapped)
	m.mu.Lock()
	m.generationsTotal++
	m.mu.Unlock()
	if err != nil {
		m.log.Error().Err(err).Dur("dur", time.Since(start)).Msg("error generating text")
		m.publisher.Publish(Event{Name: "generate_failed", Fields: map[string]any{"error": err.Error()}})
		return "", generationError{err: err}
	}
	m.publisher.Publish(Event{Name: "generate_done", Fields: map[string]any{
		"duration_ms":       time.Since(start).Milliseconds(),
		"completion_tokens": final.Usage.CompletionTokens,
	}})
	return final.Content, nil
}

// generateSafely invokes the session, collecting streamed tokens as a fallback
// for runtimes that leave FinalResult.Content empty, and converts a panic into
// an error.
func generateSafely(ctx context.Context, sess InferSession, prompt string) (final FinalResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panic: %v", r)
		}
	}()
	var b strings.Builder
	final, err = sess.Generate(ctx, prompt, func(tok string) error {
		b.WriteString(tok)
		return nil
	})
	if err != nil {
		return FinalResult{}, err
	}
	if final.Content == "" {
		final.Content = b.String()
	}
	return final, nil
}
