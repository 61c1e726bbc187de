package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/apiclient"
	"github.com/nfrund/ipadmin/internal/catalog"
	"github.com/nfrund/ipadmin/internal/config"
	"github.com/nfrund/ipadmin/internal/handlers"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/pubsub"
	"github.com/nfrund/ipadmin/internal/rendering"
	"github.com/nfrund/ipadmin/internal/statestore"
	"github.com/nfrund/ipadmin/internal/workspace"
	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/trace"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	injector *do.RootScope
	layout   *handlers.Layout
	cancel   context.CancelFunc
}

// tracing pairs the bus tracer with the exporter shutdown hook.
type tracing struct {
	tracer   trace.Tracer
	shutdown func(context.Context) error
}

// New wires every service into an injector and configures echo. The
// activity feed starts consuming the bus immediately.
func New(cfg config.Provider, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	provideServices(injector)

	// Resolve eagerly so configuration problems surface at startup.
	if _, err := do.Invoke[statestore.Store](injector); err != nil {
		return nil, fmt.Errorf("state store: %w", err)
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](injector)
	if err != nil {
		return nil, fmt.Errorf("event bus: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	feed := do.MustInvoke[*activity.Feed](injector)
	if err := feed.Start(ctx, bus); err != nil {
		cancel()
		return nil, fmt.Errorf("activity feed: %w", err)
	}
	startSweeper(ctx, do.MustInvoke[statestore.Store](injector), logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	s := &Server{
		E:        e,
		Cfg:      cfg,
		injector: injector,
		layout:   do.MustInvoke[*handlers.Layout](injector),
		cancel:   cancel,
	}
	s.setupMiddleware(logger)
	setupErrorHandling(e, s.layout)
	return s, nil
}

// sweepInterval is how often an in-process store drops expired workspaces.
const sweepInterval = 5 * time.Minute

// startSweeper drops expired entries of a MemoryStore in the background
// until ctx is cancelled. Redis expires keys itself. It reports whether a
// sweeper was started.
func startSweeper(ctx context.Context, store statestore.Store, logger *slog.Logger) bool {
	mem, ok := store.(*statestore.MemoryStore)
	if !ok {
		return false
	}
	go mem.SweepEvery(ctx, sweepInterval, logger)
	return true
}

// provideServices registers the lazy constructors for the application
// services. Configuration and the logger must already be in the injector.
func provideServices(i do.Injector) {
	do.Provide(i, func(i do.Injector) (statestore.Store, error) {
		cfg := do.MustInvoke[config.Provider](i)
		if cfg.GetRedisAddr() == "" {
			return statestore.NewMemoryStore(), nil
		}
		return statestore.NewRedisStore(statestore.RedisOptions{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
			Prefix:   "ipadmin:",
		})
	})

	do.Provide(i, func(i do.Injector) (*apiclient.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return apiclient.New(cfg.GetAPIURL(), cfg.GetAPITimeout(),
			apiclient.WithLogger(do.MustInvoke[*slog.Logger](i)),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*catalog.CachedCatalog, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return catalog.New(
			do.MustInvoke[*apiclient.Client](i),
			do.MustInvoke[statestore.Store](i),
			cfg.GetMeasureCacheTTL(),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*workspace.Workspaces, error) {
		return workspace.New(do.MustInvoke[statestore.Store](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*tracing, error) {
		tracer, shutdown, err := pubsub.SetupOTel(context.Background(), pubsub.LoadTracingConfigFromEnv())
		if err != nil {
			return nil, err
		}
		return &tracing{tracer: tracer, shutdown: shutdown}, nil
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		t := do.MustInvoke[*tracing](i)
		return pubsub.NewWatermillBridge(do.MustInvoke[*slog.Logger](i), t.tracer), nil
	})

	do.Provide(i, func(i do.Injector) (*activity.Feed, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return activity.NewFeed(cfg.GetActivityFeedSize(), do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*activity.Recorder, error) {
		return activity.NewRecorder(
			do.MustInvoke[*pubsub.WatermillBridge](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*handlers.Layout, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return handlers.NewLayout(rendering.NewUniversalRenderer(), cfg.GetCompanyName(), cfg.GetContactEmail()), nil
	})
}

func (s *Server) setupMiddleware(logger *slog.Logger) {
	s.E.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	s.E.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	s.E.Use(echomw.Recover())
	s.E.Use(echomw.Secure())

	store := sessions.NewCookieStore([]byte(s.Cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((8 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	s.E.Use(session.Middleware(store))
	s.E.Use(middleware.Logger(logger))

	s.E.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
	}))
}

// Close stops the activity feed, flushes traces and releases the
// injector's services.
func (s *Server) Close(ctx context.Context) {
	s.cancel()
	if bus, err := do.Invoke[*pubsub.WatermillBridge](s.injector); err == nil {
		if err := bus.Close(); err != nil {
			slog.Error("Failed to close event bus", "error", err)
		}
	}
	if t, err := do.Invoke[*tracing](s.injector); err == nil {
		if err := t.shutdown(ctx); err != nil {
			slog.Error("Failed to flush traces", "error", err)
		}
	}
	if store, err := do.Invoke[statestore.Store](s.injector); err == nil {
		if closer, ok := store.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				slog.Error("Failed to close state store", "error", err)
			}
		}
	}
	s.injector.Shutdown()
}
