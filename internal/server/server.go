package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "github.com/avtopark/fleetboard/internal/middleware"

	"github.com/avtopark/fleetboard/internal/backup"
	"github.com/avtopark/fleetboard/internal/config"
	"github.com/avtopark/fleetboard/internal/demodata"
	"github.com/avtopark/fleetboard/internal/http/api"
	"github.com/avtopark/fleetboard/internal/refresh"
	"github.com/avtopark/fleetboard/internal/sheets"
	"github.com/avtopark/fleetboard/internal/snapshot"
	"github.com/avtopark/fleetboard/internal/sqlite"
)

type Server struct {
	Echo    *echo.Echo
	HTTP    *http.Server
	DB      *sqlx.DB
	Refresh *refresh.Service
}

func Build(cfg *config.Config) (*Server, error) {
	//
	// Validate required settings
	//
	if os.Getenv("ADMIN_API_KEY") == "" {
		return nil, errors.New("ADMIN_API_KEY environment variable is required")
	}
	if !cfg.DemoMode {
		if cfg.SpreadsheetID == "" {
			return nil, errors.New("SPREADSHEET_ID is required (or run with -demo)")
		}
		if cfg.SheetsAPIKey == "" {
			return nil, errors.New("SHEETS_API_KEY is required (or run with -demo)")
		}
	}

	//
	// Database
	//
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		log.Printf("Creating database '%s' (from %s setting)", cfg.DBPath, cfg.DBPathSource)
	} else {
		log.Printf("Opening database '%s' (from %s setting)", cfg.DBPath, cfg.DBPathSource)
	}
	db, err := sqlx.Connect("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// WAL mode is only required once after creating the database, but
	// doesn't hurt to set it each time
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return nil, err
	}

	if err := sqlite.RunMigrations(db.DB); err != nil {
		return nil, err
	}

	//
	// Row source
	//
	var source refresh.Source
	if cfg.DemoMode {
		source = demodata.Source{}
		log.Print("Demo mode: serving embedded sample rows")
	} else {
		source = &sheets.NamedSource{
			Client:          sheets.NewClient(cfg.SpreadsheetID, cfg.SheetsAPIKey),
			ScheduleSheet:   cfg.ScheduleSheet,
			HistorySheet:    cfg.HistorySheet,
			RegulationSheet: cfg.RegulationSheet,
		}
	}

	//
	// Services
	//
	snapshotSvc := snapshot.NewService(db)
	refreshSvc := refresh.NewService(source, snapshotSvc, cfg.SnapshotMaxAge)
	backupSvc := backup.NewService(db, cfg.DBPath)

	//
	// Handlers
	//
	handler := api.NewHandler(refreshSvc, snapshotSvc, backupSvc)

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		if err := db.Ping(); err != nil {
			return c.String(http.StatusServiceUnavailable, "DB not ready")
		}
		return c.String(http.StatusOK, "Ready")
	})

	// Middleware
	e.Use(mwecho.Logger())
	e.Use(mwecho.Recover())

	// Fleet API
	fleetGroup := e.Group("/api/v1")
	api.RegisterRoutes(fleetGroup, handler)

	// Admin API
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(mwsvc.AdminAPIKeyAuth())
	api.RegisterAdminRoutes(adminGroup, handler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo:    e,
		HTTP:    srv,
		DB:      db,
		Refresh: refreshSvc,
	}, nil
}

// WarmUp runs one refresh so the first request is served from a
// snapshot. Failures are logged, not fatal: the Sheets side may be
// temporarily down and the API will retry on demand.
func (s *Server) WarmUp(ctx context.Context) {
	if _, err := s.Refresh.Refresh(ctx); err != nil {
		log.Printf("initial refresh failed: %v", err)
	}
}
