package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	SaveSelection(ctx context.Context, projectID uuid.UUID, enclosureID int64, axis domain.Axis, code string) error
	ListSelections(ctx context.Context, projectID uuid.UUID) ([]*domain.SelectionRecord, error)
	SaveBaselineFuel(ctx context.Context, projectID uuid.UUID, code string) error
	GetBaselineFuel(ctx context.Context, projectID uuid.UUID) (string, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
