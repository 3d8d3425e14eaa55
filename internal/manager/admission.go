package manager

import (
	"context"
)

// acquireModel takes the exclusive model lock. It waits as long as ctx allows,
// bounded by maxWait when configured. Returns a release func to be deferred.
func (m *Manager) acquireModel(ctx context.Context) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	waitCtx := ctx
	if m.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, m.maxWait)
		defer cancel()
	}
	if err := m.gen.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return func() {}, ctx.Err()
		}
		return func() {}, ErrTooBusy(m.maxWait)
	}
	m.mu.Lock()
	m.generating = true
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.generating = false
		m.mu.Unlock()
		m.gen.Release(1)
	}, nil
}
