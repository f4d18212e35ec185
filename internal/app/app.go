package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cellar-club/tasting/internal/config"
	"github.com/cellar-club/tasting/internal/middleware"
	"github.com/cellar-club/tasting/internal/modules/tasting"
	"github.com/cellar-club/tasting/internal/session"
	"github.com/cellar-club/tasting/internal/summarize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	backend *Backend
	closers []func() error
	logger  *zap.Logger
}

// New initializes the application: store → schema → memo store → summarizer → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := applyRuntimeSettings(cfg); err != nil {
		return nil, err
	}

	backend, err := OpenBackend(ctx, cfg, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}
	a := &App{cfg: cfg, backend: backend, logger: logger}

	action, err := backend.Store.EnsureSchema(ctx)
	if err != nil {
		_ = a.Shutdown()
		return nil, fmt.Errorf("record store schema: %w", err)
	}
	logger.Info("record store ready",
		zap.String("driver", cfg.Store.Driver),
		zap.String("sheet", cfg.Store.Sheet),
		zap.String("schema", string(action)))

	memos, closeMemos, err := openMemoStore(cfg)
	if err != nil {
		_ = a.Shutdown()
		return nil, fmt.Errorf("session store: %w", err)
	}
	if closeMemos != nil {
		a.closers = append(a.closers, closeMemos)
	}

	summarizer := summarize.FromConfig(ctx, cfg.AI, logger.Named("summarize"))
	summaries := session.NewSummaries(memos, summarizer, logger.Named("session"))
	svc := tasting.NewService(backend.Store, summaries, cfg.Wines, logger.Named("tasting"))

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Session(middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	}))
	router.Use(middleware.Logger(logger))
	router.Use(newCORS(cfg))

	a.router = router
	a.registerRoutes(tasting.NewHandler(svc))
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the record store and memo store connections.
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			errs = append(errs, err)
		}
		a.backend = nil
	}
	return errors.Join(errs...)
}
