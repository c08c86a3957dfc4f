package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/domain/dto"
	"github.com/ougirez/certenergy/internal/pkg/logger"
)

func (c *Controller) IngestResults(ctx echo.Context) error {
	var req dto.IngestRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseProjectID(req.ProjectID)
	if err != nil {
		return err
	}

	snap, err := c.projectService.Ingest(ctx.Request().Context(), id, req.SimulationResults)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, snapshotResponse(snap))
}

func (c *Controller) GetEnclosures(ctx echo.Context) error {
	var req dto.ProjectPath
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseProjectID(req.ProjectID)
	if err != nil {
		return err
	}

	snap, err := c.projectService.Snapshot(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snapshotResponse(snap))
}

// SelectSystem responds once the enclosure's pipeline has run with the new selection.
func (c *Controller) SelectSystem(ctx echo.Context) error {
	var req dto.SelectionRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseProjectID(req.ProjectID)
	if err != nil {
		return err
	}

	rctx := logger.WithFields(ctx.Request().Context(), "project_id", req.ProjectID, "enclosure_id", req.EnclosureID)
	snap, err := c.projectService.Select(rctx, id, req.EnclosureID, domain.Axis(req.Axis), req.Code)
	if err != nil {
		return err
	}
	logger.Debugf(rctx, "selection %s=%q applied", req.Axis, req.Code)

	return ctx.JSON(http.StatusOK, snapshotResponse(snap))
}

func (c *Controller) SelectBaselineFuel(ctx echo.Context) error {
	var req dto.BaselineFuelRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseProjectID(req.ProjectID)
	if err != nil {
		return err
	}

	snap, err := c.projectService.SelectBaselineFuel(ctx.Request().Context(), id, req.FuelCode)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snapshotResponse(snap))
}

func (c *Controller) Recalculate(ctx echo.Context) error {
	var req dto.ProjectPath
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseProjectID(req.ProjectID)
	if err != nil {
		return err
	}

	if _, err := c.projectService.Snapshot(ctx.Request().Context(), id); err != nil {
		return err
	}
	snap, err := c.projectService.RecalculateAll(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snapshotResponse(snap))
}
