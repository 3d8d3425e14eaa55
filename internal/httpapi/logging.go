package httpapi

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error", "warn":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel applies to requests without an override.
var defaultLogLevel = LevelInfo

// SetRequestLogLevel sets the default per-request log level (off|error|info|debug).
func SetRequestLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logGenerateStart records the start of a generate request with a bounded
// preview of the prompt.
func logGenerateStart(r *http.Request, lvl LogLevel, preview string) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Str("prompt", preview)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("generate start")
		return
	}
	log.Printf("generate start path=%s prompt=%q", r.URL.Path, preview)
}

// logGenerateEnd records the outcome of a generate request. Failures are
// logged at error level and need LevelError, successes need LevelInfo.
func logGenerateEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	need := LevelInfo
	if err != nil {
		need = LevelError
	}
	if lvl < need {
		return
	}
	dur := time.Since(start)
	if zlog != nil {
		z := zlog.Info()
		if err != nil {
			z = zlog.Error().Err(err)
		}
		z = z.Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("generate end")
		return
	}
	if err != nil {
		log.Printf("generate end status=%d dur=%s err=%v", status, dur, err)
		return
	}
	log.Printf("generate end status=%d dur=%s", status, dur)
}

// logResponseDebug records a preview of the generated text at debug level.
func logResponseDebug(r *http.Request, lvl LogLevel, preview string) {
	if lvl < LevelDebug {
		return
	}
	if zlog != nil {
		zlog.Debug().Str("path", r.URL.Path).Str("response", preview).Msg("generate output")
		return
	}
	log.Printf("generate output path=%s response=%q", r.URL.Path, preview)
}
