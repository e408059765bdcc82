package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/three-under/app/modules/auth"
	"github.com/Black-And-White-Club/three-under/app/modules/course"
	"github.com/Black-And-White-Club/three-under/app/modules/export"
	"github.com/Black-And-White-Club/three-under/app/modules/live"
	"github.com/Black-And-White-Club/three-under/app/modules/scorecard"
	"github.com/Black-And-White-Club/three-under/config"
	"github.com/Black-And-White-Club/three-under/internal/eventbus"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Modules holds every application module.
type Modules struct {
	Auth      *auth.Module
	Course    *course.Module
	Scorecard *scorecard.Module
	Live      *live.Module
	Export    *export.Module
}

// App wires the modules to the save store, the event bus and the HTTP server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Modules       Modules
	Router        *chi.Mux
	EventBus      *eventbus.EventBus
	EventRouter   *message.Router

	closers []func() error
}

// NewApp builds the application. On error every resource opened so far is released.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (_ *App, err error) {
	logger := obs.Provider.Logger
	a := &App{Config: cfg, Observability: obs}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Modules.Auth = auth.NewAuthModule(ctx, obs, auth.Config{
		JWTSecret:         cfg.JWT.Secret,
		JWTIssuer:         cfg.JWT.Issuer,
		RequestsPerSecond: cfg.HTTP.RateLimit,
		Burst:             cfg.HTTP.RateBurst,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
	})

	root, api := newHTTPRouter(obs.Registry.Prometheus, a.Modules.Auth.Middlewares())
	a.Router = root

	busConfig := eventbus.Config{Driver: eventbus.DriverMemory}
	if cfg.NATS.EventBus {
		busConfig = eventbus.Config{Driver: eventbus.DriverNATS, URL: cfg.NATS.URL}
	}
	a.EventBus, err = eventbus.New(ctx, busConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	a.closers = append(a.closers, a.EventBus.Close)

	a.EventRouter, err = eventbus.NewRouter(logger, obs.Registry.Prometheus)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.EventRouter.Close)

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open save store: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	if a.Modules.Course, err = course.NewCourseModule(ctx, obs, cfg.Catalog.Path, api); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Modules.Course.Close)

	a.Modules.Scorecard, err = scorecard.NewScorecardModule(ctx, obs, store, a.Modules.Course.Catalog, a.EventBus.Publisher, api)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Modules.Scorecard.Close)

	a.Modules.Live, err = live.NewLiveModule(ctx, obs, a.EventBus.Subscriber, a.EventRouter, api, a.Modules.Auth.CheckOrigin)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Modules.Live.Close)

	a.Modules.Export, err = export.NewExportModule(ctx, obs, a.Modules.Scorecard.ScorecardService, api)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Modules.Export.Close)

	logger.InfoContext(ctx, "Application initialized",
		"store", cfg.Store.Driver,
		"event_bus", a.EventBus.Driver(),
	)
	return a, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.Router }

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
