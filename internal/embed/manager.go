package embed

import (
	"sync"

	"github.com/flowframe/embed/internal/infrastructure/logging"
	"github.com/flowframe/embed/internal/infrastructure/monitoring"
	"github.com/flowframe/embed/internal/page"
	"github.com/flowframe/embed/internal/shared/id"
)

// Instance pairs a hosted controller with its page.
type Instance struct {
	Controller *Controller
	Page       *page.Page

	mu     sync.Mutex
	reason string
}

func (i *Instance) setReason(reason string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.reason = reason
}

func (i *Instance) closeReason() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.reason == "" {
		return "flow"
	}
	return i.reason
}

// Manager orchestrates gateway-hosted embed instances: each gets its own
// host page and controller, keyed by embed ID.
type Manager struct {
	instances  sync.Map
	pageOrigin string
	metrics    *monitoring.Metrics
	log        *logging.Logger
}

// NewManager creates an instance manager. metrics may be nil.
func NewManager(pageOrigin string, metrics *monitoring.Metrics, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		pageOrigin: pageOrigin,
		metrics:    metrics,
		log:        log,
	}
}

// Create mounts a new embed instance on a fresh host page.
func (m *Manager) Create(opts Options) *Instance {
	if opts.Logger == nil {
		opts.Logger = m.log
	}

	p := page.New(m.pageOrigin, page.WithHistory(&recordingHistory{}))
	ctrl := New(p, opts)

	inst := &Instance{Controller: ctrl, Page: p}
	m.instances.Store(ctrl.ID(), inst)

	ctrl.OnClosed(func() {
		m.instances.Delete(ctrl.ID())
		if m.metrics != nil {
			m.metrics.RecordEmbedClosed(inst.closeReason())
		}
	})

	if m.metrics != nil {
		m.metrics.RecordEmbedCreated()
	}
	return inst
}

// Get retrieves an instance by ID.
func (m *Manager) Get(embedID id.EmbedID) (*Instance, bool) {
	val, ok := m.instances.Load(embedID)
	if !ok {
		return nil, false
	}
	return val.(*Instance), true
}

// List returns all live instances.
func (m *Manager) List() []*Instance {
	var out []*Instance
	m.instances.Range(func(_, value interface{}) bool {
		out = append(out, value.(*Instance))
		return true
	})
	return out
}

// Close tears down an instance at the host's request. Returns false when the
// ID is unknown (already closed included).
func (m *Manager) Close(embedID id.EmbedID) bool {
	inst, ok := m.Get(embedID)
	if !ok {
		return false
	}
	inst.setReason("host")
	inst.Controller.Close()
	return true
}

// recordingHistory satisfies page.History by remembering the last pushed URL.
// Gateway pages have no real browser history; redirects that qualify for an
// in-place push land here.
type recordingHistory struct {
	mu   sync.Mutex
	last string
}

func (h *recordingHistory) Push(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = url
}

// Last returns the most recently pushed URL.
func (h *recordingHistory) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
