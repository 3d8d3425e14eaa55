package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// createModelFile creates a file of approximately sizeMB megabytes and returns its path.
func createModelFile(t *testing.T, dir, name string, sizeMB int) string {
	t.Helper()
	if sizeMB <= 0 {
		sizeMB = 1
	}
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	// write sizeMB megabytes (use 1MiB blocks)
	block := make([]byte, 1024*1024)
	for i := 0; i < sizeMB; i++ {
		if _, err := f.Write(block); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return p
}

// fakeAdapter is a lightweight in-memory adapter used for tests.
type fakeAdapter struct {
	mu          sync.Mutex
	unavailable bool
	startErr    error
	startPanic  bool
	startDelay  time.Duration
	genErr      error
	genPanic    bool
	genDelay    time.Duration
	tokens      []string
	content     string

	starts   int
	closes   int
	prompts  []string
	params   InferParams
	inflight int
	overlap  bool
}

func (f *fakeAdapter) Available() bool { return !f.unavailable }

func (f *fakeAdapter) Start(modelPath string, params InferParams) (InferSession, error) {
	if f.startDelay > 0 {
		time.Sleep(f.startDelay)
	}
	f.mu.Lock()
	f.starts++
	f.params = params
	f.mu.Unlock()
	if f.startPanic {
		panic("load boom")
	}
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &fakeSession{f: f}, nil
}

func (f *fakeAdapter) counts() (starts, closes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts, f.closes
}

func (f *fakeAdapter) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeSession struct {
	f      *fakeAdapter
	closed bool
}

func (s *fakeSession) Generate(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error) {
	f := s.f
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.inflight++
	if f.inflight > 1 {
		f.overlap = true
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()
	if f.genDelay > 0 {
		time.Sleep(f.genDelay)
	}
	if err := ctx.Err(); err != nil {
		return FinalResult{}, err
	}
	if f.genPanic {
		panic("generate boom")
	}
	if f.genErr != nil {
		return FinalResult{}, f.genErr
	}
	for _, tok := range f.tokens {
		if onToken != nil {
			if err := onToken(tok); err != nil {
				return FinalResult{}, err
			}
		}
	}
	return FinalResult{Content: f.content, FinishReason: "stop"}, nil
}

func (s *fakeSession) Close() error {
	if s.closed {
		return errors.New("double close")
	}
	s.closed = true
	s.f.mu.Lock()
	s.f.closes++
	s.f.mu.Unlock()
	return nil
}

// newTestManager returns a manager backed by fa with a real model file on disk.
func newTestManager(t *testing.T, fa *fakeAdapter) *Manager {
	t.Helper()
	p := createModelFile(t, t.TempDir(), "model.gguf", 1)
	return NewWithConfig(ManagerConfig{ModelPath: p, Adapter: fa})
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}
