package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Manager owns the single model handle and its lifecycle state.
//
// Two locks are involved. mu guards lifecycle metadata and is only held briefly.
// gen is an exclusive lock around the handle: generation holds it for the whole
// call and a reload holds it while swapping or clearing the handle. Lock order
// is gen, then mu.
type Manager struct {
	mu          sync.RWMutex
	state       State
	err         string
	lastOp      string
	modelSizeMB int
	loadedAt    time.Time
	generating  bool

	loadsTotal        uint64
	loadFailuresTotal uint64
	generationsTotal  uint64

	gen     *semaphore.Weighted
	session InferSession // guarded by gen

	loads singleflight.Group

	adapter   InferenceAdapter
	modelPath string
	params    InferParams
	maxWait   time.Duration
	publisher EventPublisher
	log       zerolog.Logger
	startTime time.Time
}

func newManager(modelPath string) *Manager {
	return &Manager{
		state:     StateUnloaded,
		gen:       semaphore.NewWeighted(1),
		modelPath: modelPath,
		publisher: noopPublisher{},
		log:       zerolog.Nop(),
		startTime: time.Now(),
	}
}

// New constructs a Manager for modelPath with default generation parameters.
func New(modelPath string) *Manager {
	return NewWithConfig(ManagerConfig{ModelPath: modelPath})
}

// SetInferenceAdapter replaces the runtime binding. It must be called before Start.
func (m *Manager) SetInferenceAdapter(a InferenceAdapter) {
	m.mu.Lock()
	m.adapter = a
	m.mu.Unlock()
}

func (m *Manager) currentAdapter() InferenceAdapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adapter
}

// Ready reports whether a model handle is loaded and serving.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateReady
}

// RuntimeAvailable reports whether the model-execution runtime can be used.
func (m *Manager) RuntimeAvailable() bool {
	a := m.currentAdapter()
	return a != nil && a.Available()
}

// ModelPath returns the configured model asset path.
func (m *Manager) ModelPath() string { return m.modelPath }

// Params returns the generation parameters applied to every request.
func (m *Manager) Params() InferParams { return m.params }

// SetEventPublisher installs p; nil restores the no-op publisher. Call it before Start.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.mu.Lock()
	m.publisher = p
	m.mu.Unlock()
}
