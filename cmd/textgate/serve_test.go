package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"textgate/internal/client"
	"textgate/internal/config"
	"textgate/internal/manager"
)

func envMap(m map[string]string) config.LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestResolveServeConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "textgate.yaml")
	if err := os.WriteFile(cfgPath, []byte("port: 6000\nmax_tokens: 32\nhost: 10.0.0.1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	opts := &rootOptions{}
	root := buildRootCmd()
	cmd, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("find serve: %v", err)
	}
	f := &serveFlags{}
	cmd.ResetFlags()
	f.register(cmd)
	if err := cmd.Flags().Parse([]string{"-c", cfgPath, "--port", "7000", "--cors-origins", "http://a, http://b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts.logLevel = "DEBUG"
	cfg, err := resolveServeConfig(cmd, f, opts, envMap(map[string]string{"PORT": "6500", "HOST": "127.0.0.1"}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Port != 7000 {
		t.Fatalf("flag should win over env and file, got port %d", cfg.Port)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("env should win over file, got host %q", cfg.Host)
	}
	if cfg.MaxTokens != 32 {
		t.Fatalf("file value lost, got max_tokens %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.5 {
		t.Fatalf("default lost, got temperature %v", cfg.Temperature)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log flag not applied: %q", cfg.LogLevel)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "http://b" {
		t.Fatalf("cors origins not split: %v", cfg.CORS.Origins)
	}
}

func TestResolveServeConfig_Invalid(t *testing.T) {
	cmd := newServeCmd(&rootOptions{})
	f := &serveFlags{}
	cmd.ResetFlags()
	f.register(cmd)
	if err := cmd.Flags().Parse([]string{"--port", "70000"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := resolveServeConfig(cmd, f, &rootOptions{}, envMap(nil)); err == nil || !strings.Contains(err.Error(), "port") {
		t.Fatalf("expected port validation error, got %v", err)
	}
}

func TestNewLogger_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("warn", "json", &buf)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"service":"textgate"`) {
		t.Fatalf("unexpected output: %s", out)
	}
	buf.Reset()
	cl := newLogger("", "console", &buf)
	cl.Info().Msg("human")
	if strings.Contains(buf.String(), `{"`) || !strings.Contains(buf.String(), "human") {
		t.Fatalf("expected console output, got %s", buf.String())
	}
}

type echoAdapter struct{}

func (echoAdapter) Available() bool { return true }
func (echoAdapter) Start(string, manager.InferParams) (manager.InferSession, error) {
	return echoSession{}, nil
}

type echoSession struct{}

func (echoSession) Generate(ctx context.Context, prompt string, onToken func(string) error) (manager.FinalResult, error) {
	return manager.FinalResult{Content: "echo:" + strconv.Itoa(len(prompt))}, nil
}
func (echoSession) Close() error { return nil }

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRunServe_ServesAndShutsDown(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "m.gguf")
	if err := os.WriteFile(modelPath, []byte("gguf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Defaults()
	cfg.Host = "127.0.0.1"
	cfg.Port = freePort(t)
	cfg.ModelPath = modelPath
	cfg.LogLevel = "error"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var logs bytes.Buffer
	go func() { done <- runServe(ctx, cfg, &logs, echoAdapter{}) }()

	c := client.New("http://"+cfg.Addr(), time.Second)
	deadline := time.Now().Add(3 * time.Second)
	for {
		h, err := c.Health(context.Background())
		if err == nil && h.ModelLoaded {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server never became ready: h=%+v err=%v", h, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	out, err := c.Generate(context.Background(), "hello")
	if err != nil || !strings.HasPrefix(out, "echo:") {
		t.Fatalf("generate: out=%q err=%v", out, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServe: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("runServe did not return after cancel")
	}
}

func TestRunServe_BindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	cfg := config.Defaults()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.gguf")
	var logs bytes.Buffer
	if err := runServe(context.Background(), cfg, &logs, echoAdapter{}); err == nil || !strings.Contains(err.Error(), "listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
