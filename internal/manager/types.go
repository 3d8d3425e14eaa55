package manager

import "time"

// State represents the lifecycle state of the model.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	State    State
	Err      string
	OpID     string
	LoadedAt time.Time
}

// Health is the minimal view served by /health.
type Health struct {
	RuntimeAvailable bool
	ModelLoaded      bool
	ModelPath        string
	State            State
}

// ReloadResult reports the outcome of a synchronous reload.
type ReloadResult struct {
	OpID        string
	Success     bool
	ModelLoaded bool
	Err         error
}
