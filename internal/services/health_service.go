package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/source"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// SourceChecker is the part of DashboardService the health checks need.
type SourceChecker interface {
	Table(ctx context.Context) (*survey.Table, error)
	SourceKind() string
}

// CacheStatsProvider exposes memo cache counters.
type CacheStatsProvider interface {
	Stats() source.CacheStats
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	checker   SourceChecker
	cache     CacheStatsProvider
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Rows    int    `json:"rows,omitempty"`
}

// NewHealthService creates a new health service. cache may be nil.
func NewHealthService(version, buildTime string, checker SourceChecker, cache CacheStatsProvider, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		checker:   checker,
		cache:     cache,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
	if hs.cache != nil {
		status.Services = map[string]interface{}{"cache": hs.cache.Stats()}
	}
	return status
}

// ReadinessCheck reports ready once the response table can be loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	data := hs.checkSource(ctx)
	status.Services["source"] = data
	if data.Status != "ready" {
		status.Status = "not_ready"
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime:   infrastructure.ReadRuntimeStats(hs.startTime).Map(),
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	return result
}

func (hs *HealthService) checkSource(ctx context.Context) ServiceHealth {
	if hs.checker == nil {
		return ServiceHealth{Status: "not_ready", Message: "no source configured"}
	}

	table, err := hs.checker.Table(ctx)
	if err != nil {
		hs.logger.WarnContext(ctx, "source not ready",
			slog.String("source", hs.checker.SourceKind()),
			slog.String("error", err.Error()))
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	return ServiceHealth{Status: "ready", Message: hs.checker.SourceKind(), Rows: table.Len()}
}
