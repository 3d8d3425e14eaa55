package httpapi

import (
	"encoding/json"
	"net/http"

	"textgate/internal/manager"
	"textgate/pkg/types"
)

// Client-facing messages for generate rejections.
const (
	msgRuntimeUnavailable = "Model runtime not available on this system"
	msgNotReady           = "Model not loaded yet or failed to load"
	msgNoPrompt           = "No prompt provided"
	msgInvalidJSON        = "invalid JSON body"
	msgBodyTooLarge       = "request body too large"
	msgUnsupportedType    = "Content-Type must be application/json"
	msgShuttingDown       = "server shutting down"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes the {success:false,error} envelope.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.GenerateResponse{Success: false, Error: msg})
}

// generateErrorStatus maps an error returned by Service.Generate to an HTTP
// status and the reason label recorded in metrics.
func generateErrorStatus(err error) (int, string) {
	switch {
	case manager.IsDependencyUnavailable(err):
		return http.StatusInternalServerError, "runtime_unavailable"
	case manager.IsNotReady(err):
		return http.StatusServiceUnavailable, "not_ready"
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests, "too_busy"
	case manager.IsGenerationFailed(err):
		return http.StatusInternalServerError, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
