package dataset

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Dataset owns the published snapshot of one project and fans it out to
// subscribers. Readers never block writers.
type Dataset struct {
	current atomic.Pointer[Snapshot]

	mu      sync.Mutex
	version uint64
	subs    map[int]chan *Snapshot
	nextSub int
}

func New() *Dataset {
	d := &Dataset{subs: make(map[int]chan *Snapshot)}
	d.current.Store(NewSnapshot(nil, nil))
	return d
}

// Current returns the last published snapshot.
func (d *Dataset) Current() *Snapshot {
	return d.current.Load()
}

// Publish stamps next and makes it current. next must not be used for writes afterwards.
func (d *Dataset) Publish(next *Snapshot) *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.version++
	next.ID = uuid.New()
	next.Version = d.version
	next.PublishedAt = time.Now().UTC()
	d.current.Store(next)

	for _, ch := range d.subs {
		deliverLatest(ch, next)
	}

	return next
}

// Subscribe registers a subscriber. The channel holds at most the latest
// undelivered snapshot; older undelivered ones are dropped.
func (d *Dataset) Subscribe() (<-chan *Snapshot, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextSub
	d.nextSub++
	ch := make(chan *Snapshot, 1)
	d.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.subs, id)
			close(ch)
		})
	}
}

// deliverLatest is called with d.mu held, so it is the only sender on ch.
func deliverLatest(ch chan *Snapshot, s *Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- s
}
