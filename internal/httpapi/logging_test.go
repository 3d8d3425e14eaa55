package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"warn":  LevelError,
		"info":  LevelInfo,
		"DEBUG": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// shorthand ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	// default
	SetRequestLogLevel("off")
	t.Cleanup(func() { SetRequestLogLevel("info") })
	r = httptest.NewRequest("GET", "/x", nil)
	if got := requestLogLevel(r); got != LevelOff {
		t.Fatalf("default level not applied: %v", got)
	}
}

func withTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = nil })
	return &buf
}

func TestGenerateLogging_TruncatesPrompt(t *testing.T) {
	buf := withTestLogger(t)
	svc := newReadyService()
	long := strings.Repeat("x", 80)
	postGenerate(t, NewMux(svc), `{"prompt":"`+long+`"}`, "application/json")
	out := buf.String()
	if !strings.Contains(out, `"prompt":"`+strings.Repeat("x", 50)+`..."`) {
		t.Fatalf("prompt not truncated to 50 chars: %s", out)
	}
	if strings.Contains(out, strings.Repeat("x", 51)) {
		t.Fatalf("full prompt leaked into logs: %s", out)
	}
	if !strings.Contains(out, "generate start") || !strings.Contains(out, "generate end") {
		t.Fatalf("missing start/end lines: %s", out)
	}
}

func TestGenerateLogging_OffSuppressesSuccess(t *testing.T) {
	buf := withTestLogger(t)
	req := httptest.NewRequest(http.MethodPost, "/generate?log=off", strings.NewReader(`{"prompt":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	NewMux(newReadyService()).ServeHTTP(httptest.NewRecorder(), req)
	if buf.Len() != 0 {
		t.Fatalf("expected no logs, got %s", buf.String())
	}
}

func TestLogGenerateEnd_ErrorNeedsErrorLevel(t *testing.T) {
	buf := withTestLogger(t)
	r := httptest.NewRequest(http.MethodPost, "/generate", nil)
	logGenerateEnd(r, LevelError, http.StatusInternalServerError, time.Now(), errors.New("boom"))
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected error line, got %s", buf.String())
	}
	buf.Reset()
	logGenerateEnd(r, LevelError, http.StatusOK, time.Now(), nil)
	if buf.Len() != 0 {
		t.Fatalf("success should not log at error level: %s", buf.String())
	}
}
