package types

// GenerateRequest is the payload accepted by POST /generate.
type GenerateRequest struct {
	// Required user text. It is wrapped in the safety template before it reaches the model.
	// A nil value means the field was absent; an empty string is accepted.
	// example: Why is the sky blue?
	Prompt *string `json:"prompt" example:"Why is the sky blue?"`
}

// GenerateResponse is the envelope returned by POST /generate.
type GenerateResponse struct {
	// True when the model produced a response.
	// example: true
	Success bool `json:"success" example:"true"`
	// Generated text (present on success).
	// example: The sky looks blue because sunlight bounces off tiny bits of air.
	Response string `json:"response,omitempty" example:"The sky looks blue because sunlight bounces off tiny bits of air."`
	// Human-readable error (present on failure).
	// example: Model not loaded yet or failed to load
	Error string `json:"error,omitempty" example:"Model not loaded yet or failed to load"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Always "healthy" while the process serves requests.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Whether the model-execution runtime is linked into this build.
	// example: true
	RuntimeAvailable bool `json:"mediapipe_available" example:"true"`
	// Whether the model is loaded and ready to generate.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Configured model asset path.
	// example: ./models/gemma-3n-E2B-it-Q4_K_M.gguf
	ModelPath string `json:"model_path" example:"./models/gemma-3n-E2B-it-Q4_K_M.gguf"`
	// Lifecycle state (unloaded, loading, ready, failed).
	// example: ready
	State string `json:"state,omitempty" example:"ready"`
}

// ReloadResponse is returned by POST /reload_model.
type ReloadResponse struct {
	// Result of the initialization attempt.
	// example: true
	Success bool `json:"success" example:"true"`
	// Readiness after the attempt.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Identifier of the initialization operation (shared by joined callers).
	// example: 3f1c9d2e-8a41-4b7e-9a51-2f0d6f1c2b77
	OpID string `json:"op_id,omitempty" example:"3f1c9d2e-8a41-4b7e-9a51-2f0d6f1c2b77"`
	// Failure reason when success is false.
	Error string `json:"error,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Lifecycle state (unloaded, loading, ready, failed).
	// example: ready
	State string `json:"state" example:"ready"`
	// Whether the model-execution runtime is linked into this build.
	// example: true
	RuntimeAvailable bool `json:"runtime_available" example:"true"`
	// Configured model asset path.
	// example: ./models/gemma-3n-E2B-it-Q4_K_M.gguf
	ModelPath string `json:"model_path" example:"./models/gemma-3n-E2B-it-Q4_K_M.gguf"`
	// Size of the model asset in MB as of the last successful load.
	// example: 2900
	ModelSizeMB int `json:"model_size_mb" example:"2900"`
	// Generation parameters applied to every request.
	// example: 256
	MaxTokens int `json:"max_tokens" example:"256"`
	// example: 0.5
	Temperature float64 `json:"temperature" example:"0.5"`
	// Last lifecycle error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Identifier of the last initialization operation.
	LastOpID string `json:"last_op_id,omitempty"`
	// Whether a generation currently holds the model lock.
	// example: false
	Generating bool `json:"generating" example:"false"`
	// Total successful model loads.
	// example: 1
	LoadsTotal uint64 `json:"loads_total" example:"1"`
	// Total failed initialization attempts.
	// example: 0
	LoadFailuresTotal uint64 `json:"load_failures_total" example:"0"`
	// Total completed generations (successful or not).
	// example: 42
	GenerationsTotal uint64 `json:"generations_total" example:"42"`
	// Unix seconds of the last successful load (0 if never).
	// example: 1700000000
	LoadedAtUnix int64 `json:"loaded_at_unix" example:"1700000000"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
