package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"textgate/internal/httpapi"
	"textgate/internal/manager"
)

// createTempModel writes an empty model asset and returns its path.
func createTempModel(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
		t.Fatalf("write temp model %s: %v", p, err)
	}
	return p
}

// echoAdapter returns a deterministic response derived from the prompt and
// records every prompt it sees.
type echoAdapter struct {
	mu        sync.Mutex
	delay     time.Duration
	startErr  error
	prompts   []string
	closes    int
	startGate chan struct{}
}

func (a *echoAdapter) Available() bool { return true }

func (a *echoAdapter) Start(path string, params manager.InferParams) (manager.InferSession, error) {
	if a.startGate != nil {
		<-a.startGate
	}
	if a.startErr != nil {
		return nil, a.startErr
	}
	return &echoSession{a: a}, nil
}

func (a *echoAdapter) lastPrompt() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.prompts) == 0 {
		return ""
	}
	return a.prompts[len(a.prompts)-1]
}

type echoSession struct{ a *echoAdapter }

func (s *echoSession) Generate(ctx context.Context, prompt string, onToken func(string) error) (manager.FinalResult, error) {
	s.a.mu.Lock()
	s.a.prompts = append(s.a.prompts, prompt)
	s.a.mu.Unlock()
	if s.a.delay > 0 {
		time.Sleep(s.a.delay)
	}
	return manager.FinalResult{Content: "echo:" + strings.ToUpper(lastLine(prompt))}, nil
}

func (s *echoSession) Close() error {
	s.a.mu.Lock()
	s.a.closes++
	s.a.mu.Unlock()
	return nil
}

// lastLine returns the last non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

func newServer(t *testing.T, cfg manager.ManagerConfig) (*httptest.Server, *manager.Manager) {
	t.Helper()
	mgr := manager.NewWithConfig(cfg)
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json: %v body=%s", err, string(body))
	}
	return v
}
