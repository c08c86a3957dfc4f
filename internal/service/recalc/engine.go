package recalc

import (
	"context"
	"errors"
	"fmt"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
	"github.com/ougirez/certenergy/internal/service/dataset"
	"github.com/ougirez/certenergy/internal/service/ingest"
	"github.com/ougirez/certenergy/internal/service/selection"
	"golang.org/x/sync/errgroup"
)

var ErrStopped = errors.New("recalculation engine stopped")

// CatalogSource returns the loaded catalogs, or nil while they are unavailable.
type CatalogSource interface {
	Current() *domain.Catalogs
}

type Option func(*Engine)

// WithWorkers bounds the fan-out of bulk recomputes.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithStageHook registers fn to be called from the loop on every state change of an enclosure.
func WithStageHook(fn func(enclosureID int64, s State)) Option {
	return func(e *Engine) {
		e.hook = fn
	}
}

type task func(ctx context.Context)

// run tracks the pipeline of one enclosure. Only the loop goroutine touches it.
type run struct {
	state   State
	pending bool
	edits   map[domain.Axis]string
	waiters []chan struct{}
	next    []chan struct{}
}

// Engine sequences the recalculation stages of one project on a single loop
// goroutine. Each stage is a separate task that reads the latest published
// snapshot and publishes its own copy-on-write result, so stages of different
// enclosures interleave while stages of one enclosure stay strictly ordered.
// A trigger that arrives while its enclosure is mid-pipeline is coalesced into
// one rerun after the current run completes.
type Engine struct {
	dataset    *dataset.Dataset
	selections *selection.Store
	catalogs   CatalogSource
	workers    int
	hook       func(int64, State)

	requests chan task
	stopped  chan struct{}

	queue []task
	runs  map[int64]*run
}

func NewEngine(ds *dataset.Dataset, sel *selection.Store, catalogs CatalogSource, opts ...Option) *Engine {
	e := &Engine{
		dataset:    ds,
		selections: sel,
		catalogs:   catalogs,
		workers:    4,
		requests:   make(chan task, 64),
		stopped:    make(chan struct{}),
		runs:       make(map[int64]*run),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes triggers until ctx is done. It must be called exactly once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)

	for {
		if len(e.queue) == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case t := <-e.requests:
				e.queue = append(e.queue, t)
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

	drain:
		for {
			select {
			case t := <-e.requests:
				e.queue = append(e.queue, t)
			default:
				break drain
			}
		}

		t := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		t(ctx)
	}
}

func (e *Engine) Dataset() *dataset.Dataset {
	return e.dataset
}

// Select records code for axis a of the enclosure and waits until the
// enclosure's pipeline has run with it. An empty code clears the selection.
func (e *Engine) Select(ctx context.Context, enclosureID int64, a domain.Axis, code string) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %s", constants.ErrUnknownAxis, a)
	}
	if _, ok := e.dataset.Current().Enclosure(enclosureID); !ok {
		return fmt.Errorf("%w: %d", constants.ErrUnknownEnclosure, enclosureID)
	}

	e.selections.Set(enclosureID, a, code)

	done := make(chan struct{})
	edits := map[domain.Axis]string{a: code}
	if err := e.submit(ctx, func(ctx context.Context) { e.trigger(ctx, enclosureID, edits, done) }); err != nil {
		return err
	}
	return e.wait(ctx, done)
}

// RecalculateAll runs the full pipeline over every enclosure and publishes one
// snapshot. An empty dataset is returned as is, without publishing.
func (e *Engine) RecalculateAll(ctx context.Context) (*dataset.Snapshot, error) {
	return e.bulk(ctx, func(ctx context.Context) (*dataset.Snapshot, error) {
		snap := e.dataset.Current()
		if snap.Len() == 0 {
			return snap, nil
		}
		return e.recomputeAll(ctx, snap)
	})
}

// Ingest replaces the dataset with a new simulation run and publishes it fully computed.
func (e *Engine) Ingest(ctx context.Context, results domain.SimulationResults) (*dataset.Snapshot, error) {
	return e.bulk(ctx, func(ctx context.Context) (*dataset.Snapshot, error) {
		res := ingest.FromResults(ctx, results)
		logger.Infof(ctx, "ingested %d enclosures, %d baseline aggregates", len(res.Enclosures), len(res.BaseInputs))
		return e.recomputeAll(ctx, dataset.NewSnapshot(res.Enclosures, res.BaseInputs))
	})
}

// SelectBaselineFuel sets the project-wide baseline fuel and recomputes the
// baseline of every enclosure. Actual-case fields are left untouched. The fuel
// is kept for the next ingest when the dataset is still empty.
func (e *Engine) SelectBaselineFuel(ctx context.Context, code string) (*dataset.Snapshot, error) {
	e.selections.SetBaselineFuel(code)

	return e.bulk(ctx, func(ctx context.Context) (*dataset.Snapshot, error) {
		cat := e.catalogs.Current()
		snap := e.dataset.Current()
		if snap.Len() == 0 {
			return snap, nil
		}
		if cat == nil {
			logger.Warn(ctx, "baseline: energy catalogs unavailable, baseline left unchanged")
			return snap, nil
		}

		fuel := baselineFuel(e.selections, cat)
		encs := snap.Enclosures()
		for i := range encs {
			if in, ok := snap.BaseInput(encs[i].ID); ok {
				encs[i].BaselineFields = Baseline(in, fuel)
			}
		}
		return e.dataset.Publish(snap.WithAll(encs)), nil
	})
}

func (e *Engine) bulk(ctx context.Context, fn func(ctx context.Context) (*dataset.Snapshot, error)) (*dataset.Snapshot, error) {
	type result struct {
		snap *dataset.Snapshot
		err  error
	}
	done := make(chan result, 1)
	err := e.submit(ctx, func(ctx context.Context) {
		snap, err := fn(ctx)
		done <- result{snap, err}
	})
	if err != nil {
		return nil, err
	}

	select {
	case r := <-done:
		return r.snap, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.stopped:
		return nil, ErrStopped
	}
}

// recomputeAll fans the pipeline out over every enclosure of base, joins, and publishes exactly one snapshot.
func (e *Engine) recomputeAll(ctx context.Context, base *dataset.Snapshot) (*dataset.Snapshot, error) {
	cat := e.catalogs.Current()
	if cat == nil {
		logger.Warn(ctx, "recalc: energy catalogs unavailable, catalog-dependent fields left unchanged")
	}

	var fuel domain.EnergySystemOption
	if cat != nil {
		fuel = baselineFuel(e.selections, cat)
	}

	encs := base.Enclosures()
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for i := range encs {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			encs[i] = Recompute(encs[i], e.selections, cat)
			if in, ok := base.BaseInput(encs[i].ID); ok && cat != nil {
				encs[i].BaselineFields = Baseline(in, fuel)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("recompute: %w", err)
	}

	snap := e.dataset.Publish(base.WithAll(encs))
	logger.Debugf(ctx, "recalc: published snapshot v%d with %d enclosures", snap.Version, snap.Len())
	return snap, nil
}

func (e *Engine) submit(ctx context.Context, t task) error {
	select {
	case e.requests <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stopped:
		return ErrStopped
	}
}

func (e *Engine) wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stopped:
		return ErrStopped
	}
}

func (e *Engine) enqueue(t task) {
	e.queue = append(e.queue, t)
}

func (e *Engine) setState(id int64, r *run, s State) {
	r.state = s
	if e.hook != nil {
		e.hook(id, s)
	}
}

func (e *Engine) trigger(ctx context.Context, id int64, edits map[domain.Axis]string, done chan struct{}) {
	r, ok := e.runs[id]
	if !ok {
		r = &run{edits: make(map[domain.Axis]string)}
		e.runs[id] = r
	}
	for a, code := range edits {
		r.edits[a] = code
	}

	if r.state != StateIdle {
		r.pending = true
		if done != nil {
			r.next = append(r.next, done)
		}
		return
	}

	if done != nil {
		r.waiters = append(r.waiters, done)
	}
	e.start(ctx, id, r)
}

// start moves the enclosure to Triggered, commits the pending record edits and schedules the first stage.
func (e *Engine) start(ctx context.Context, id int64, r *run) {
	e.setState(id, r, StateTriggered)

	snap := e.dataset.Current()
	enc, ok := snap.Enclosure(id)
	if !ok {
		e.finish(ctx, id, r)
		return
	}

	prev := enc
	for a, code := range r.edits {
		enc.SetCode(a, code)
	}
	r.edits = make(map[domain.Axis]string)
	if enc != prev {
		e.dataset.Publish(snap.With(enc))
	}

	e.enqueue(e.step(id, 0))
}

func (e *Engine) step(id int64, i int) task {
	return func(ctx context.Context) {
		r := e.runs[id]
		e.setState(id, r, stages[i])

		snap := e.dataset.Current()
		enc, ok := snap.Enclosure(id)
		if !ok {
			logger.Debugf(ctx, "recalc: enclosure %d disappeared mid-pipeline", id)
			e.finish(ctx, id, r)
			return
		}

		prev := enc
		e.compute(ctx, stages[i], &enc)
		if enc != prev {
			e.dataset.Publish(snap.With(enc))
		}

		if i+1 < len(stages) {
			e.enqueue(e.step(id, i+1))
			return
		}
		e.finish(ctx, id, r)
	}
}

func (e *Engine) compute(ctx context.Context, s State, enc *domain.Enclosure) {
	cat := e.catalogs.Current()
	if cat == nil && s != StateComputingTotal {
		logger.Debugf(ctx, "recalc: catalogs unavailable, %s of enclosure %d skipped", s, enc.ID)
		return
	}

	switch s {
	case StateComputingEfficiency:
		for _, b := range domain.Branches {
			Efficiency(enc, b, e.selections, cat)
		}
	case StateComputingPrimaryEnergy:
		for _, b := range domain.Branches {
			PrimaryEnergy(enc, b, e.selections, cat)
		}
	case StateComputingTotal:
		Totals(enc)
	case StateComputingEmissions:
		Emissions(enc, e.selections, cat)
	}
}

func (e *Engine) finish(ctx context.Context, id int64, r *run) {
	e.setState(id, r, StateIdle)
	for _, w := range r.waiters {
		close(w)
	}
	r.waiters = nil

	if r.pending {
		r.pending = false
		r.waiters, r.next = r.next, nil
		e.start(ctx, id, r)
		return
	}
	delete(e.runs, id)
}
