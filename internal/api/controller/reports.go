package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/domain/dto"
	"github.com/ougirez/certenergy/internal/service/report"
)

func (c *Controller) GetReport(ctx echo.Context) error {
	var req dto.ReportRequest
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

	rep, err := report.Build(report.Kind(req.Kind), snap)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rep)
}
