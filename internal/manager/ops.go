package manager

import "context"

// Reload synchronously re-runs Initialize and reports the outcome together with
// the readiness observed afterwards.
func (m *Manager) Reload(ctx context.Context) ReloadResult {
	op, err := m.Initialize(ctx)
	return ReloadResult{
		OpID:        op,
		Success:     err == nil,
		ModelLoaded: m.Ready(),
		Err:         err,
	}
}
