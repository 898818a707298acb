package explorer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/scan-io-git/vulx/internal/findings"
)

// Snapshot is an immutable view of all loaded findings.
type Snapshot struct {
	Findings []*findings.Finding
	Sources  []string
	LoadedAt time.Time
}

// Store holds the current snapshot. Readers always see a complete snapshot; Replace swaps
// it in one step and notifies subscribers afterwards.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

// NewStore creates a Store holding an empty snapshot.
func NewStore() *Store {
	s := &Store{listeners: make(map[int]func())}
	s.current.Store(&Snapshot{})
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace installs snap as the current snapshot and fires the change notification.
// The store takes ownership of snap; callers must not modify it afterwards.
func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = &Snapshot{}
	}
	s.current.Store(snap)

	s.mu.Lock()
	listeners := make([]func(), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Subscribe registers fn to run after every Replace. The returned func unregisters it.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
