package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/findim/config"
	"github.com/guttosm/findim/internal/api"
	"github.com/guttosm/findim/internal/export"
	"github.com/guttosm/findim/internal/logger"
	"github.com/guttosm/findim/internal/series"
	"github.com/guttosm/findim/internal/service"
	"github.com/guttosm/findim/internal/storage"
)

// App holds every wired dependency shared by the CLI commands and the HTTP API.
type App struct {
	Config   config.Config
	DB       *sql.DB                     // nil unless Postgres is enabled
	Repo     storage.DimensionRepository // nil unless Postgres is enabled
	Calendar service.CalendarService
	Series   service.SeriesService
	Exporter *service.Exporter
}

// New wires the application for cfg and returns it with a cleanup function
// that releases every opened resource.
//
// Responsibilities:
//   - Connects to PostgreSQL (only when enabled) and builds the repository.
//   - Creates the BCB time series source.
//   - Initializes the calendar, series and export services.
func New(cfg config.Config) (*App, func(), error) {
	a := &App{Config: cfg}

	if cfg.PostgresEnabled() {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		a.DB = db
		a.Repo = storage.NewDimensionRepository(db)
	}

	source := series.NewBCBSource(series.BCBConfig{BaseURL: cfg.BCB.BaseURL, Timeout: cfg.BCB.Timeout})
	a.Calendar = service.NewCalendarService()
	a.Series = service.NewSeriesService(source)
	a.Exporter = service.NewExporter(a.Calendar, a.Series, a.sink)

	log := logger.With("app")
	log.Info().
		Bool("postgres", a.DB != nil).
		Str("export_format", cfg.Export.Format).
		Str("bcb_base_url", cfg.BCB.BaseURL).
		Msg("application wired")

	cleanup := func() {
		if a.DB != nil {
			_ = a.DB.Close()
		}
	}
	return a, cleanup, nil
}

func (a *App) sink(format string) (export.Sink, error) {
	return export.New(format, a.Repo)
}

// Router builds the HTTP router with health and readiness probes.
func (a *App) Router() *gin.Engine {
	handler := api.NewHandler(a.Calendar, a.Series)
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout: a.Config.Server.RequestTimeout,
		RateLimit:      a.Config.Server.RateLimit,
		RateWindow:     time.Minute,
	})

	checks := map[string]api.Pinger{}
	if a.Repo != nil {
		checks["postgres"] = func(ctx context.Context) error { return a.Repo.Ping(ctx) }
	}
	api.NewHealthHandler(checks).Register(router)

	return router
}
