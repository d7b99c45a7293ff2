package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/metric"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	apierrors "github.com/LinFrancis/escuela-aucca/internal/errors"
	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	customMiddleware "github.com/LinFrancis/escuela-aucca/internal/middleware"
	"github.com/LinFrancis/escuela-aucca/internal/services"
	"github.com/LinFrancis/escuela-aucca/internal/source"
	handlers "github.com/LinFrancis/escuela-aucca/internal/transport/http"
)

var (
	// Version is overridden at build time with -ldflags
	Version = config.AppVersion
	// BuildTime is set at compile time
	BuildTime = ""
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.DashboardMetrics

	Source           source.Source
	Cache            *source.Cache
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	AccessGate       *customMiddleware.AccessGate
	Renderer         *handlers.Renderer

	runtimeMetrics metric.Registration
}

// NewApplication loads the configuration and builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(context.Background(), cfg, logger)
}

// New builds the application from a loaded configuration
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", Version),
		slog.String("source", cfg.Source.Kind))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateDashboardMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
	}

	if cfg.Telemetry.MetricsEnabled {
		app.runtimeMetrics, err = infrastructure.RegisterRuntimeMetrics(otelProviders.Meter, time.Now())
		if err != nil {
			return nil, err
		}
	}

	if err := app.initializeServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices(ctx context.Context) error {
	src, err := source.New(ctx, a.Config.Source, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create survey source: %w", err)
	}
	a.Source = src
	a.Cache = source.NewCache(a.Logger, a.Metrics)

	a.DashboardService = services.NewDashboardService(src, a.Cache, a.OTelProviders.Tracer, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(Version, BuildTime, a.DashboardService, a.Cache, a.Logger)

	a.AccessGate, err = customMiddleware.NewAccessGate(a.Config.Security, a.Logger)
	if err != nil {
		return err
	}

	a.Renderer, err = handlers.NewRenderer()
	if err != nil {
		return err
	}

	a.Logger.InfoContext(ctx, "Services initialized",
		slog.String("source_kind", src.Kind()),
		slog.String("source_key", src.Key()))
	return nil
}

// setupRouter configures the HTTP router
func (a *Application) setupRouter() error {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	// RequestID → RealIP → OTel → Logger → Recoverer → SecurityHeaders → RateLimit → AccessGate
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewTelemetry(a.OTelProviders.Tracer, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}
	r.Use(a.AccessGate.Handler)

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	timeout := customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger)

	// Pages
	r.Get("/", handlers.RedirectToDashboard)
	r.Handle("/static/*", handlers.StaticHandler())
	handlers.NewAccessHandler(a.AccessGate, a.Renderer, a.Logger).Routes(r)
	html := handlers.NewHTMLHandler(a.DashboardService, a.Renderer, a.Logger)
	r.With(timeout).Get(handlers.DashboardPath, html.Dashboard)

	// API
	health := handlers.NewHealthHandler(a.HealthService, a.Logger)
	dashboard := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
	r.Route("/api", func(r chi.Router) {
		health.Routes(r)
		r.Group(func(r chi.Router) {
			r.Use(timeout)
			r.Mount("/", dashboard.Routes())
		})
	})

	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, errorHandler))

	a.Router = r
	return nil
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server and warms the table cache in the background
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			// Signal shutdown through context instead of os.Exit
			cancel()
		}
	}()

	go a.warmUp(ctx)

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// warmUp loads the response table once so the first visitor does not wait
// for the spreadsheet download. Failures are not cached, so a later request
// retries.
func (a *Application) warmUp(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Source.FetchTimeout+5*time.Second)
	defer cancel()

	table, err := a.DashboardService.Table(ctx)
	if err != nil {
		a.Logger.WarnContext(ctx, "Survey table warm-up failed",
			slog.String("error", err.Error()))
		return
	}
	a.Logger.InfoContext(ctx, "Survey table loaded",
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.runtimeMetrics != nil {
		if err := a.runtimeMetrics.Unregister(); err != nil {
			a.Logger.ErrorContext(ctx, "Error unregistering runtime metrics", slog.String("error", err.Error()))
		}
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	// ctx is already cancelled; give Stop a fresh one
	return a.Stop(context.Background())
}
