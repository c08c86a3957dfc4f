package controller

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/domain/dto"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/service/auth"
	"github.com/ougirez/certenergy/internal/service/catalog"
	"github.com/ougirez/certenergy/internal/service/dataset"
	"github.com/ougirez/certenergy/internal/service/project"
)

type Controller struct {
	projectService *project.Service
	catalogService *catalog.Service
	authService    *auth.Service
}

func NewController(projects *project.Service, catalogs *catalog.Service, authService *auth.Service) *Controller {
	return &Controller{
		projectService: projects,
		catalogService: catalogs,
		authService:    authService,
	}
}

// bind binds and validates req.
func bind(ctx echo.Context, req interface{}) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}

func parseProjectID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: project_id: %v", constants.ErrBadRequest, err)
	}
	return id, nil
}

func snapshotResponse(snap *dataset.Snapshot) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		SnapshotID:  snap.ID.String(),
		Version:     snap.Version,
		PublishedAt: snap.PublishedAt.Format(time.RFC3339Nano),
		Enclosures:  snap.Enclosures(),
	}
}
