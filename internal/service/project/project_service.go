package project

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
	"github.com/ougirez/certenergy/internal/pkg/store"
	"github.com/ougirez/certenergy/internal/service/dataset"
	"github.com/ougirez/certenergy/internal/service/recalc"
	"github.com/ougirez/certenergy/internal/service/selection"
	"golang.org/x/sync/errgroup"
)

// Project is the in-memory working set of one certification project.
type Project struct {
	ID         uuid.UUID
	Engine     *recalc.Engine
	Selections *selection.Store
}

type entry struct {
	ready   chan struct{}
	project *Project
	err     error
}

// Service owns one recalculation engine per project, opened lazily with the
// selections persisted for it.
type Service struct {
	store    store.Store
	catalogs recalc.CatalogSource
	workers  int

	ctx    context.Context
	cancel context.CancelFunc
	loops  *errgroup.Group

	mu       sync.Mutex
	projects map[uuid.UUID]*entry
}

func NewProjectService(store store.Store, catalogs recalc.CatalogSource, workers int) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	loops, ctx := errgroup.WithContext(ctx)

	return &Service{
		store:    store,
		catalogs: catalogs,
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
		loops:    loops,
		projects: make(map[uuid.UUID]*entry),
	}
}

// Get returns the project, opening it on first use.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	s.mu.Lock()
	e, ok := s.projects[id]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		s.projects[id] = e
	}
	s.mu.Unlock()

	if !ok {
		e.project, e.err = s.open(ctx, id)
		if e.err != nil {
			s.mu.Lock()
			delete(s.projects, id)
			s.mu.Unlock()
		}
		close(e.ready)
	}

	select {
	case <-e.ready:
		return e.project, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) open(ctx context.Context, id uuid.UUID) (*Project, error) {
	var (
		records      []*domain.SelectionRecord
		baselineFuel string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		records, err = s.store.ListSelections(egCtx, id)
		return err
	})
	eg.Go(func() error {
		code, err := s.store.GetBaselineFuel(egCtx, id)
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil
		}
		baselineFuel = code
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("restore project %s: %w", id, err)
	}

	sel := selection.NewStore()
	sel.Load(records, baselineFuel)

	p := &Project{
		ID:         id,
		Selections: sel,
		Engine:     recalc.NewEngine(dataset.New(), sel, s.catalogs, recalc.WithWorkers(s.workers)),
	}

	loopCtx := logger.WithFields(s.ctx, "project_id", id.String())
	s.loops.Go(func() error {
		err := p.Engine.Run(loopCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	logger.Infof(ctx, "project %s opened with %d persisted selections", id, len(records))
	return p, nil
}

// Snapshot returns the current dataset of the project, or ErrProjectNotFound
// when no simulation run was ingested yet.
func (s *Service) Snapshot(ctx context.Context, id uuid.UUID) (*dataset.Snapshot, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	snap := p.Engine.Dataset().Current()
	if snap.Version == 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrProjectNotFound, id)
	}
	return snap, nil
}

// Select applies a selection, waits for the enclosure's pipeline and persists it.
// When the write fails the previous code is applied again, so memory never holds
// a selection the store does not.
func (s *Service) Select(ctx context.Context, id uuid.UUID, enclosureID int64, axis domain.Axis, code string) (*dataset.Snapshot, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var prev string
	if e, ok := p.Engine.Dataset().Current().Enclosure(enclosureID); ok && axis.Valid() {
		prev = e.Code(axis)
	}

	if err := p.Engine.Select(ctx, enclosureID, axis, code); err != nil {
		return nil, fmt.Errorf("engine.Select: %w", err)
	}
	if err := s.store.SaveSelection(ctx, id, enclosureID, axis, code); err != nil {
		if rbErr := p.Engine.Select(ctx, enclosureID, axis, prev); rbErr != nil {
			logger.Errorf(ctx, "restore %s=%q after failed save: %v", axis, prev, rbErr)
		}
		return nil, fmt.Errorf("store.SaveSelection: %w", err)
	}

	return p.Engine.Dataset().Current(), nil
}

func (s *Service) SelectBaselineFuel(ctx context.Context, id uuid.UUID, code string) (*dataset.Snapshot, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := p.Selections.BaselineFuel()

	snap, err := p.Engine.SelectBaselineFuel(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("engine.SelectBaselineFuel: %w", err)
	}
	if err := s.store.SaveBaselineFuel(ctx, id, code); err != nil {
		if _, rbErr := p.Engine.SelectBaselineFuel(ctx, prev); rbErr != nil {
			logger.Errorf(ctx, "restore baseline fuel %q after failed save: %v", prev, rbErr)
		}
		return nil, fmt.Errorf("store.SaveBaselineFuel: %w", err)
	}

	return snap, nil
}

func (s *Service) Ingest(ctx context.Context, id uuid.UUID, results domain.SimulationResults) (*dataset.Snapshot, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := p.Engine.Ingest(logger.WithFields(ctx, "project_id", id.String()), results)
	if err != nil {
		return nil, fmt.Errorf("engine.Ingest: %w", err)
	}
	return snap, nil
}

func (s *Service) RecalculateAll(ctx context.Context, id uuid.UUID) (*dataset.Snapshot, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := p.Engine.RecalculateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine.RecalculateAll: %w", err)
	}
	return snap, nil
}

// RecalculateOpen recomputes every open project, e.g. after the catalogs changed.
func (s *Service) RecalculateOpen(ctx context.Context) error {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.projects))
	for _, e := range s.projects {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, e := range entries {
		e := e
		eg.Go(func() error {
			select {
			case <-e.ready:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			if e.err != nil {
				return nil
			}
			_, err := e.project.Engine.RecalculateAll(egCtx)
			return err
		})
	}
	return eg.Wait()
}

// Close stops every project loop.
func (s *Service) Close() error {
	s.cancel()
	return s.loops.Wait()
}
