package session

import (
	"sync"

	"trade-dashboard-go/internal/dashboard"
)

// State is the view state of one browser session. The filtered view and the
// visible page are always derived from it plus the stored trade list; nothing
// else is cached between renders.
type State struct {
	Contract  string
	Page      int
	PageSize  int
	HasTrades bool
	Flash     string

	uploading bool
}

// Manager owns the per-session view states behind a single lock. All state
// transitions the dashboard supports (filter change, page change, page-size
// change, upload lifecycle) go through it.
type Manager struct {
	mu              sync.Mutex
	sessions        map[string]*State
	defaultPageSize int
}

// NewManager creates a session manager with the given default page size.
func NewManager(defaultPageSize int) *Manager {
	return &Manager{
		sessions:        make(map[string]*State),
		defaultPageSize: defaultPageSize,
	}
}

// state returns the session's state, creating it with defaults if needed.
// Callers must hold m.mu.
func (m *Manager) state(id string) *State {
	st, ok := m.sessions[id]
	if !ok {
		st = &State{
			Contract: dashboard.AllContracts,
			Page:     1,
			PageSize: m.defaultPageSize,
		}
		m.sessions[id] = st
	}
	return st
}

// Snapshot returns a copy of the session's current view state.
func (m *Manager) Snapshot(id string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state(id)
}

// SetContract updates the contract filter and resets the page to 1.
func (m *Manager) SetContract(id, contract string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(id)
	st.Contract = contract
	st.Page = 1
}

// SetPageSize updates the page size and resets the page to 1.
func (m *Manager) SetPageSize(id string, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(id)
	st.PageSize = size
	st.Page = 1
}

// SetPage updates the current page number.
func (m *Manager) SetPage(id string, page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state(id).Page = page
}

// ResetView marks the session as holding trades and restores the view
// defaults. Called after every successful upload.
func (m *Manager) ResetView(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(id)
	st.HasTrades = true
	st.Contract = dashboard.AllContracts
	st.Page = 1
}

// SetFlash stores a one-shot message shown on the next rendered page.
func (m *Manager) SetFlash(id, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state(id).Flash = msg
}

// PopFlash returns and clears the session's flash message.
func (m *Manager) PopFlash(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(id)
	msg := st.Flash
	st.Flash = ""
	return msg
}

// BeginUpload marks an upload as in flight. It returns false if one is
// already running for the session, which rejects duplicate submissions.
func (m *Manager) BeginUpload(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(id)
	if st.uploading {
		return false
	}
	st.uploading = true
	return true
}

// EndUpload clears the in-flight flag. It runs on success and failure alike.
func (m *Manager) EndUpload(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state(id).uploading = false
}
