package store

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/certenergy/internal/pkg/constants"
)

const (
	tableSelections    = "project_selections"
	tableBaselineFuels = "project_baseline_fuels"
)

var (
	selectionColumns    = []string{"enclosure_id", "axis", "code", "updated_at"}
	baselineFuelColumns = []string{"fuel_code", "updated_at"}
)

// wrapErr maps driver errors onto coded errors the API layer understands.
func wrapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return constants.ErrDBNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s (%s): %w", pgErr.Code, pgErr.Message, err)
	}
	return err
}

// builder returns a squirrel builder with postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
