package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/certenergy/internal/api/controller"
	"github.com/ougirez/certenergy/internal/pkg/logger"
	"github.com/ougirez/certenergy/internal/service/auth"
	"github.com/ougirez/certenergy/internal/service/catalog"
	"github.com/ougirez/certenergy/internal/service/project"
)

type Config struct {
	AllowOrigins []string
	Debug        bool
}

type APIService struct {
	router         *echo.Echo
	projectService *project.Service
	catalogService *catalog.Service
	authService    *auth.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router, mostly for tests.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(cfg Config, projects *project.Service, catalogs *catalog.Service, authService *auth.Service) (*APIService, error) {
	svc := &APIService{
		router:         echo.New(),
		projectService: projects,
		catalogService: catalogs,
		authService:    authService,
	}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Debug = cfg.Debug
	if cfg.Debug {
		svc.router.Logger.SetLevel(log.DEBUG)
	} else {
		svc.router.Logger.SetLevel(log.WARN)
	}

	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestID())
	svc.router.Use(middleware.Logger())
	svc.router.Use(svc.RequestLoggerMiddleware)

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Secret-Token"},
		AllowCredentials: true,
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(projects, catalogs, authService)

	admin := api.Group("/admin")
	admin.POST("/login", cntrl.LoginAdmin)

	cat := api.Group("/catalog")
	cat.GET("", cntrl.GetCatalog)
	cat.POST("/reload", cntrl.ReloadCatalog, svc.AdminMiddleware)

	projectsGroup := api.Group("/projects/:project_id")
	projectsGroup.POST("/results", cntrl.IngestResults, svc.AdminMiddleware)
	projectsGroup.GET("/enclosures", cntrl.GetEnclosures)
	projectsGroup.PUT("/enclosures/:enclosure_id/selections", cntrl.SelectSystem)
	projectsGroup.PUT("/baseline", cntrl.SelectBaselineFuel)
	projectsGroup.POST("/recalculate", cntrl.Recalculate)
	projectsGroup.GET("/reports/:kind", cntrl.GetReport)

	return svc, nil
}
