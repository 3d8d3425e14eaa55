package manager

import (
	"time"

	"textgate/pkg/types"
)

// Snapshot returns a read-only view of the manager state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{State: m.state, Err: m.err, OpID: m.lastOp, LoadedAt: m.loadedAt}
}

// Health reports runtime availability and readiness without side effects.
func (m *Manager) Health() Health {
	avail := m.RuntimeAvailable()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Health{
		RuntimeAvailable: avail,
		ModelLoaded:      m.state == StateReady,
		ModelPath:        m.modelPath,
		State:            m.state,
	}
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	avail := m.RuntimeAvailable()
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		State:             string(m.state),
		RuntimeAvailable:  avail,
		ModelPath:         m.modelPath,
		ModelSizeMB:       m.modelSizeMB,
		MaxTokens:         m.params.MaxTokens,
		Temperature:       float64(m.params.Temperature),
		LastError:         m.err,
		LastOpID:          m.lastOp,
		Generating:        m.generating,
		LoadsTotal:        m.loadsTotal,
		LoadFailuresTotal: m.loadFailuresTotal,
		GenerationsTotal:  m.generationsTotal,
		UptimeSeconds:     int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:    time.Now().Unix(),
	}
	if !m.loadedAt.IsZero() {
		resp.LoadedAtUnix = m.loadedAt.Unix()
	}
	return resp
}
