package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/logger"
	"github.com/ougirez/certenergy/internal/pkg/store/xpgx"
)

func saveSelectionQuery(projectID uuid.UUID, enclosureID int64, axis domain.Axis, code string) sq.Sqlizer {
	if code == "" {
		return builder().Delete(tableSelections).
			Where(sq.Eq{
				"project_id":   projectID.String(),
				"enclosure_id": enclosureID,
				"axis":         string(axis),
			})
	}

	return builder().Insert(tableSelections).
		Columns("project_id", "enclosure_id", "axis", "code").
		Values(projectID.String(), enclosureID, string(axis), code).
		Suffix(`
on conflict (project_id, enclosure_id, axis)
do update
set
	code = excluded.code,
	updated_at = now()`)
}

// SaveSelection upserts a selection; an empty code deletes it.
func (s *store) SaveSelection(ctx context.Context, projectID uuid.UUID, enclosureID int64, axis domain.Axis, code string) error {
	if _, err := s.pool.Execx(ctx, saveSelectionQuery(projectID, enclosureID, axis, code)); err != nil {
		logger.Errorf(ctx, "SaveSelection: %s", err.Error())
		return fmt.Errorf("save selection, enclosure_id-%d, axis-%s: %w", enclosureID, axis, wrapErr(err))
	}
	return nil
}

func listSelectionsQuery(projectID uuid.UUID) sq.Sqlizer {
	return builder().Select(selectionColumns...).
		From(tableSelections).
		Where(sq.Eq{"project_id": projectID.String()}).
		OrderBy("enclosure_id, axis")
}

func (s *store) ListSelections(ctx context.Context, projectID uuid.UUID) ([]*domain.SelectionRecord, error) {
	selected, err := xpgx.Selectx[domain.SelectionRecord](ctx, s.pool, listSelectionsQuery(projectID))
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, fmt.Errorf("list selections: %w", wrapErr(err))
	}
	return selected, nil
}

func saveBaselineFuelQuery(projectID uuid.UUID, code string) sq.Sqlizer {
	return builder().Insert(tableBaselineFuels).
		Columns("project_id", "fuel_code").
		Values(projectID.String(), code).
		Suffix(`
on conflict (project_id)
do update
set
	fuel_code = excluded.fuel_code,
	updated_at = now()`)
}

func (s *store) SaveBaselineFuel(ctx context.Context, projectID uuid.UUID, code string) error {
	if _, err := s.pool.Execx(ctx, saveBaselineFuelQuery(projectID, code)); err != nil {
		logger.Errorf(ctx, "SaveBaselineFuel: %s", err.Error())
		return fmt.Errorf("save baseline fuel: %w", wrapErr(err))
	}
	return nil
}

// GetBaselineFuel returns constants.ErrDBNotFound when the project has none.
func (s *store) GetBaselineFuel(ctx context.Context, projectID uuid.UUID) (string, error) {
	query := builder().Select(baselineFuelColumns...).
		From(tableBaselineFuels).
		Where(sq.Eq{"project_id": projectID.String()})

	selected, err := xpgx.Getx[domain.BaselineFuelRecord](ctx, s.pool, query)
	if err != nil {
		return "", wrapErr(err)
	}
	return selected.FuelCode, nil
}
