package state

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"lifeboard/internal/store"
)

var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrEmptyURL        = errors.New("url must not be empty")
	ErrInvalidAmount   = errors.New("amount must be a finite number")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrNotPermutation  = errors.New("reorder is not a permutation of the current tasks")
)

// Subscriber receives the fully updated snapshot after every mutation,
// synchronously, before the mutating call returns.
type Subscriber func(store.Snapshot)

// Manager is the single authority over all collections and preferences.
// It hydrates from the durable store at construction, serializes every
// mutating call, and write-through persists after each mutation. It owns
// ID generation; callers never supply IDs.
type Manager struct {
	mu    sync.Mutex
	store *store.Store
	snap  store.Snapshot
	subs  []Subscriber

	newID func() string
	now   func() time.Time
}

// New hydrates a Manager from the store's last persisted snapshot, or from
// the built-in defaults when none exists.
func New(st *store.Store) *Manager {
	return &Manager{
		store: st,
		snap:  st.Load(),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Subscribe registers fn to observe every future mutation. Not safe to call
// concurrently with mutations; register subscribers during setup.
func (m *Manager) Subscribe(fn Subscriber) {
	m.subs = append(m.subs, fn)
}

// Snapshot returns a deep copy of the current state.
func (m *Manager) Snapshot() store.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone()
}

// Flush persists the current state. Called on shutdown so the last
// mutation is never lost even if a write-through failed.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Persist(m.snap)
}

// commit runs with m.mu held: subscribers observe the new state before the
// mutating call returns, then the snapshot is written through. A failed
// write does not roll back the in-memory state; Flush covers shutdown.
func (m *Manager) commit() {
	snap := m.snap.Clone()
	for _, fn := range m.subs {
		fn(snap)
	}
	_ = m.store.Persist(m.snap)
}

func (m *Manager) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}
