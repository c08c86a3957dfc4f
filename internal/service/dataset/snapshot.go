package dataset

import (
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/certenergy/internal/domain"
)

// Snapshot is an immutable view of a project's enclosures. Every write builds a
// new Snapshot; published snapshots are never modified.
type Snapshot struct {
	ID          uuid.UUID
	Version     uint64
	PublishedAt time.Time

	enclosures []domain.Enclosure
	index      map[int64]int
	baseInputs map[int64]domain.BaseEnclosureResult
}

// NewSnapshot builds an unpublished snapshot from enclosures and the baseline aggregates keyed by enclosure id.
func NewSnapshot(enclosures []domain.Enclosure, baseInputs map[int64]domain.BaseEnclosureResult) *Snapshot {
	s := &Snapshot{
		enclosures: make([]domain.Enclosure, len(enclosures)),
		index:      make(map[int64]int, len(enclosures)),
		baseInputs: make(map[int64]domain.BaseEnclosureResult, len(baseInputs)),
	}
	copy(s.enclosures, enclosures)
	for i, e := range s.enclosures {
		s.index[e.ID] = i
	}
	for id, in := range baseInputs {
		s.baseInputs[id] = in
	}
	return s
}

func (s *Snapshot) Len() int {
	return len(s.enclosures)
}

// Enclosures returns a copy of the enclosures in ingestion order.
func (s *Snapshot) Enclosures() []domain.Enclosure {
	out := make([]domain.Enclosure, len(s.enclosures))
	copy(out, s.enclosures)
	return out
}

func (s *Snapshot) Enclosure(id int64) (domain.Enclosure, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Enclosure{}, false
	}
	return s.enclosures[i], true
}

func (s *Snapshot) BaseInput(id int64) (domain.BaseEnclosureResult, bool) {
	in, ok := s.baseInputs[id]
	return in, ok
}

// IDs returns the enclosure ids in ingestion order.
func (s *Snapshot) IDs() []int64 {
	ids := make([]int64, len(s.enclosures))
	for i, e := range s.enclosures {
		ids[i] = e.ID
	}
	return ids
}

// With returns a new unpublished snapshot where the enclosure with e.ID is
// replaced by e. Unknown ids leave the copy unchanged.
func (s *Snapshot) With(e domain.Enclosure) *Snapshot {
	next := s.clone()
	if i, ok := next.index[e.ID]; ok {
		next.enclosures[i] = e
	}
	return next
}

// WithAll returns a new unpublished snapshot with every enclosure replaced by
// its counterpart in updated, matched by id.
func (s *Snapshot) WithAll(updated []domain.Enclosure) *Snapshot {
	next := s.clone()
	for _, e := range updated {
		if i, ok := next.index[e.ID]; ok {
			next.enclosures[i] = e
		}
	}
	return next
}

func (s *Snapshot) clone() *Snapshot {
	next := &Snapshot{
		enclosures: make([]domain.Enclosure, len(s.enclosures)),
		index:      s.index,
		baseInputs: s.baseInputs,
	}
	copy(next.enclosures, s.enclosures)
	return next
}
