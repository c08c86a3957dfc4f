package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
)

func (c *Controller) GetCatalog(ctx echo.Context) error {
	cat := c.catalogService.Current()
	if cat == nil {
		return constants.ErrCatalogUnavailable
	}

	return ctx.JSON(http.StatusOK, cat)
}

// ReloadCatalog refetches the catalogs and recomputes every open project against them.
func (c *Controller) ReloadCatalog(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	cat, err := c.catalogService.Load(rctx)
	if err != nil {
		return err
	}

	if err := c.projectService.RecalculateOpen(rctx); err != nil {
		return err
	}
	logger.Info(rctx, "catalogs reloaded, open projects recomputed")

	return ctx.JSON(http.StatusOK, cat)
}
