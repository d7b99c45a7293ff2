package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/source"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// TableLoader returns the (possibly memoized) table of a source.
// *source.Cache implements it.
type TableLoader interface {
	Load(ctx context.Context, src source.Source) (*survey.Table, error)
}

// DashboardService runs the dashboard pipeline: load, resolve, filter and
// aggregate. Each call to Build is an independent run over the cached table.
type DashboardService struct {
	src     source.Source
	loader  TableLoader
	tracer  trace.Tracer
	metrics *infrastructure.DashboardMetrics
	logger  *slog.Logger
}

// NewDashboardService creates the service. tracer and metrics may be nil.
func NewDashboardService(src source.Source, loader TableLoader, tracer trace.Tracer, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *DashboardService {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("")
	}
	return &DashboardService{
		src:     src,
		loader:  loader,
		tracer:  tracer,
		metrics: metrics,
		logger:  infrastructure.WithComponent(logger, "dashboard_service"),
	}
}

// Catalog returns the workshop programme.
func (s *DashboardService) Catalog() []domain.WorkshopDescriptor {
	return survey.Catalog()
}

// SourceKind returns the kind of the configured source.
func (s *DashboardService) SourceKind() string {
	return s.src.Kind()
}

// Table returns the response table.
func (s *DashboardService) Table(ctx context.Context) (*survey.Table, error) {
	return s.loader.Load(ctx, s.src)
}

// Build runs the pipeline for workshop (0 for every workshop).
func (s *DashboardService) Build(ctx context.Context, workshop int) (*domain.Dashboard, error) {
	sel := survey.Selection{Workshop: workshop}
	mode := "single"
	if sel.All() {
		mode = "all"
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.build", trace.WithAttributes(
		attribute.Int("workshop", workshop),
		attribute.String("mode", mode),
	))
	defer span.End()

	start := time.Now()
	dashboard, err := s.build(ctx, sel)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrWorkshopColumnNotFound) {
			outcome = "column_not_found"
		}
		s.metrics.RecordDashboardBuild(ctx, mode, outcome)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		s.logger.WarnContext(ctx, "dashboard build failed",
			slog.Int("workshop", workshop),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.RecordDashboardBuild(ctx, mode, "success")
	span.SetAttributes(
		attribute.Int("rows.total", dashboard.TotalRows),
		attribute.Int("rows.filtered", dashboard.FilteredRows),
	)

	s.logger.InfoContext(ctx, "dashboard built",
		slog.Int("workshop", workshop),
		slog.String("column", dashboard.Selection.Column),
		slog.Int("total_rows", dashboard.TotalRows),
		slog.Int("filtered_rows", dashboard.FilteredRows),
		slog.Int("missing_columns", len(dashboard.MissingColumns)),
		slog.Duration("duration", time.Since(start)))

	return dashboard, nil
}

func (s *DashboardService) build(ctx context.Context, sel survey.Selection) (*domain.Dashboard, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	table, err := s.loader.Load(ctx, s.src)
	if err != nil {
		return nil, err
	}

	run, err := survey.NewRun(table, sel)
	if err != nil {
		return nil, err
	}

	dashboard := run.Dashboard()
	dashboard.Source = s.src.Kind()
	return dashboard, nil
}
