package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"textgate/internal/manager"
	"textgate/pkg/types"
)

type handlers struct {
	svc Service
}

// generate godoc
// @Summary      Generate text
// @Description  Wraps the prompt in the child-safety template and runs it through the model. Requests are served one at a time.
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        request  body      types.GenerateRequest  true  "Prompt"
// @Success      200      {object}  types.GenerateResponse
// @Failure      400      {object}  types.GenerateResponse
// @Failure      415      {object}  types.GenerateResponse
// @Failure      429      {object}  types.GenerateResponse
// @Failure      500      {object}  types.GenerateResponse
// @Failure      503      {object}  types.GenerateResponse
// @Router       /generate [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lvl := requestLogLevel(r)
	reject := func(status int, reason, msg string, err error) {
		incrementGenerateRejection(reason)
		writeJSONError(w, status, msg)
		if err == nil {
			err = errors.New(msg)
		}
		logGenerateEnd(r, lvl, status, start, err)
	}

	if !h.svc.RuntimeAvailable() {
		reject(http.StatusInternalServerError, "runtime_unavailable", msgRuntimeUnavailable, nil)
		return
	}
	if !h.svc.Ready() {
		reject(http.StatusServiceUnavailable, "not_ready", msgNotReady, nil)
		return
	}
	prompt, status, msg := decodePrompt(w, r)
	if status != 0 {
		reason := "bad_request"
		if status == http.StatusUnsupportedMediaType {
			reason = "unsupported_media_type"
		}
		reject(status, reason, msg, nil)
		return
	}

	logGenerateStart(r, lvl, manager.PromptPreview(prompt, promptLogChars))
	// Join server base context with request context so shutdown aborts lock waits too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	out, err := h.svc.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			if r.Context().Err() != nil {
				// Client went away while waiting for the lock; nobody reads a reply.
				incrementGenerateRejection("canceled")
				logGenerateEnd(r, lvl, 499, start, err)
				return
			}
			reject(http.StatusServiceUnavailable, "shutting_down", msgShuttingDown, err)
			return
		}
		status, reason := generateErrorStatus(err)
		if status == http.StatusTooManyRequests {
			IncrementBackpressure("lock_wait")
		}
		reject(status, reason, err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, types.GenerateResponse{Success: true, Response: out})
	logResponseDebug(r, lvl, manager.PromptPreview(out, promptLogChars))
	logGenerateEnd(r, lvl, http.StatusOK, start, nil)
}

// decodePrompt reads the generate body. A non-zero status means the request was
// rejected with msg. An empty prompt string is accepted.
func decodePrompt(w http.ResponseWriter, r *http.Request) (string, int, string) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !isJSONContentType(ct) {
		return "", http.StatusUnsupportedMediaType, msgUnsupportedType
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.GenerateRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return "", http.StatusBadRequest, msgNoPrompt
		case errors.As(err, &tooLarge):
			return "", http.StatusBadRequest, msgBodyTooLarge
		default:
			return "", http.StatusBadRequest, msgInvalidJSON
		}
	}
	// Only whitespace may follow the object.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", http.StatusBadRequest, msgBodyTooLarge
		}
		return "", http.StatusBadRequest, msgInvalidJSON
	}
	if req.Prompt == nil {
		return "", http.StatusBadRequest, msgNoPrompt
	}
	return *req.Prompt, 0, ""
}

func isJSONContentType(ct string) bool {
	mt := strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// health godoc
// @Summary      Health report
// @Description  Reports runtime availability and whether the model is loaded. Never has side effects.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	hl := h.svc.Health()
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:           "healthy",
		RuntimeAvailable: hl.RuntimeAvailable,
		ModelLoaded:      hl.ModelLoaded,
		ModelPath:        hl.ModelPath,
		State:            string(hl.State),
	})
}

// reload godoc
// @Summary      Reload the model
// @Description  Synchronously re-runs model initialization and reports the outcome.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  types.ReloadResponse
// @Router       /reload_model [post]
func (h *handlers) reload(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Reload(r.Context())
	resp := types.ReloadResponse{Success: res.Success, ModelLoaded: res.ModelLoaded, OpID: res.OpID}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	if zlog != nil {
		z := zlog.Info().Str("op", res.OpID).Bool("success", res.Success)
		if res.Err != nil {
			z = z.Err(res.Err)
		}
		z.Msg("reload requested")
	}
	writeJSON(w, http.StatusOK, resp)
}

// status godoc
// @Summary      Detailed status
// @Tags         admin
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}
