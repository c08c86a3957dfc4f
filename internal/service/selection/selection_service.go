package selection

import (
	"sync"

	"github.com/ougirez/certenergy/internal/domain"
)

// Store holds the pending catalog codes per enclosure, one map per axis, and
// the project-wide baseline fuel.
type Store struct {
	mu           sync.RWMutex
	axes         map[domain.Axis]map[int64]string
	baselineFuel string
}

func NewStore() *Store {
	s := &Store{axes: make(map[domain.Axis]map[int64]string, len(domain.Axes))}
	for _, a := range domain.Axes {
		s.axes[a] = make(map[int64]string)
	}
	return s
}

// Set records code for the enclosure on axis a. An empty code clears the selection.
// It reports whether the stored value changed.
func (s *Store) Set(enclosureID int64, a domain.Axis, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.axes[a]
	if !ok {
		return false
	}

	prev, had := m[enclosureID]
	if code == "" {
		delete(m, enclosureID)
		return had
	}
	m[enclosureID] = code
	return !had || prev != code
}

func (s *Store) Get(enclosureID int64, a domain.Axis) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.axes[a][enclosureID]
	return code, ok
}

// ForEnclosure returns every selected axis of the enclosure.
func (s *Store) ForEnclosure(enclosureID int64) map[domain.Axis]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.Axis]string)
	for a, m := range s.axes {
		if code, ok := m[enclosureID]; ok {
			out[a] = code
		}
	}
	return out
}

func (s *Store) BaselineFuel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baselineFuel
}

func (s *Store) SetBaselineFuel(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baselineFuel = code
}

// Load replaces the whole content with persisted records.
func (s *Store) Load(records []*domain.SelectionRecord, baselineFuel string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.axes {
		for id := range m {
			delete(m, id)
		}
	}
	for _, r := range records {
		if m, ok := s.axes[r.Axis]; ok && r.Code != "" {
			m[r.EnclosureID] = r.Code
		}
	}
	s.baselineFuel = baselineFuel
}
