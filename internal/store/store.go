package store

import (
	"fmt"
	"sync"

	"batchpix/internal/model"
)

// Store is the ordered collection of tracked entries, keyed by ID.
// All mutations happen synchronously under one lock; callers never see a
// partially-applied change.
type Store struct {
	mu       sync.RWMutex
	order    []string
	entries  map[string]*model.Entry
	onChange func() // UI notification, set once at wiring time
}

// Update names the entry fields a settings update may replace. Nil fields
// are left untouched.
type Update struct {
	OutputName   *string
	TargetWidth  *int
	TargetHeight *int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string]*model.Entry),
	}
}

// SetChangeCallback sets the callback invoked after every mutation.
func (s *Store) SetChangeCallback(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Add appends entries in the given order.
func (s *Store) Add(entries ...*model.Entry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	for _, e := range entries {
		if _, exists := s.entries[e.ID]; exists {
			continue
		}
		s.entries[e.ID] = e
		s.order = append(s.order, e.ID)
	}
	s.mu.Unlock()

	s.notifyChange()
}

// Remove deletes the entry and releases its preview handle. Removing an
// absent ID is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	entry, exists := s.entries[id]
	if !exists {
		s.mu.Unlock()
		return
	}

	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if entry.Preview != nil {
		entry.Preview.Release()
	}

	s.notifyChange()
}

// UpdateSettings replaces only the named fields on the matching entry.
// Updating an absent ID is a no-op. Target dimensions are rejected when
// non-positive and ignored for non-image entries; the preview handle is
// never touched.
func (s *Store) UpdateSettings(id string, upd Update) error {
	if (upd.TargetWidth != nil && *upd.TargetWidth < 1) ||
		(upd.TargetHeight != nil && *upd.TargetHeight < 1) {
		return fmt.Errorf("target dimensions must be positive")
	}

	s.mu.Lock()
	entry, exists := s.entries[id]
	if !exists {
		s.mu.Unlock()
		return nil
	}

	if upd.OutputName != nil {
		entry.OutputName = *upd.OutputName
	}
	if entry.Image != nil {
		if upd.TargetWidth != nil {
			entry.Image.TargetWidth = *upd.TargetWidth
		}
		if upd.TargetHeight != nil {
			entry.Image.TargetHeight = *upd.TargetHeight
		}
	}
	s.mu.Unlock()

	s.notifyChange()
	return nil
}

// Get returns the entry for id.
func (s *Store) Get(id string) (*model.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.entries[id]
	return entry, exists
}

// List returns the entries in insertion order.
func (s *Store) List() []*model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.entries[id])
	}
	return entries
}

// Snapshots returns setting-captured copies of every entry in insertion
// order, for handing to a batch run.
func (s *Store) Snapshots() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := make([]model.Entry, 0, len(s.order))
	for _, id := range s.order {
		snaps = append(snaps, s.entries[id].Snapshot())
	}
	return snaps
}

// Len returns the number of tracked entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// AllNamed reports whether every entry has a usable output name.
func (s *Store) AllNamed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if !entry.Named() {
			return false
		}
	}
	return true
}

// Close releases every preview handle and empties the store. Called at
// application teardown.
func (s *Store) Close() {
	s.mu.Lock()
	entries := make([]*model.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.entries = make(map[string]*model.Entry)
	s.order = nil
	s.mu.Unlock()

	for _, e := range entries {
		if e.Preview != nil {
			e.Preview.Release()
		}
	}
}

func (s *Store) notifyChange() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()

	if fn != nil {
		fn()
	}
}
