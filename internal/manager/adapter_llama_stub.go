//go:build !llama

package manager

// This file provides a no-CGO stub for the llama adapter. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real adapter lives in adapter_llama.go (tagged 'llama').

import (
	"context"
)

// llamaBuilt indicates this binary was compiled without llama support.
const llamaBuilt = false

const stubMessage = "model runtime not available on this system (built without the 'llama' tag)"

// llamaAdapter is a stub that reports the runtime as unavailable and refuses to
// construct sessions.
type llamaAdapter struct {
	ctxSize int
	threads int
}

func NewLlamaAdapter(ctxSize, threads int) InferenceAdapter {
	return &llamaAdapter{ctxSize: ctxSize, threads: threads}
}

func (a *llamaAdapter) Available() bool { return llamaBuilt }

type llamaSession struct{}

func (a *llamaAdapter) Start(modelPath string, params InferParams) (InferSession, error) {
	return nil, ErrDependencyUnavailable(stubMessage)
}

func (s *llamaSession) Generate(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error) {
	// Unreachable through Start, kept so the stub satisfies InferSession.
	select {
	case <-ctx.Done():
		return FinalResult{}, ctx.Err()
	default:
	}
	return FinalResult{}, ErrDependencyUnavailable(stubMessage)
}

func (s *llamaSession) Close() error { return nil }
