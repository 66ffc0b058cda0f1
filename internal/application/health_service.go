package application

import (
	"context"

	"github.com/alorle/smogwatch/internal/metrics"
	"github.com/alorle/smogwatch/internal/port/driven"
)

// HealthService orchestrates health checks for the application and its dependencies.
type HealthService struct {
	db           driven.ReportRepository
	source       driven.AirQualitySource
	encyclopedia driven.Encyclopedia
}

// NewHealthService creates a new health check service.
func NewHealthService(db driven.ReportRepository, source driven.AirQualitySource, encyclopedia driven.Encyclopedia) *HealthService {
	return &HealthService{
		db:           db,
		source:       source,
		encyclopedia: encyclopedia,
	}
}

// ComponentHealth represents the health status of a single component.
type ComponentHealth struct {
	Status string // "ok" or "error"
	Error  string // empty if status is "ok", otherwise contains error message
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status    string // "ok" if all components are healthy, "degraded" otherwise
	DB        ComponentHealth
	OpenAQ    ComponentHealth
	Wikipedia ComponentHealth
}

// Check performs health checks on all dependencies.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Status: "ok"}

	check := func(ping func(context.Context) error) ComponentHealth {
		if err := ping(ctx); err != nil {
			status.Status = "degraded"
			return ComponentHealth{Status: "error", Error: err.Error()}
		}
		return ComponentHealth{Status: "ok"}
	}

	status.DB = check(s.db.Ping)
	status.OpenAQ = check(s.source.Ping)
	status.Wikipedia = check(s.encyclopedia.Ping)

	if status.Status != "ok" {
		metrics.RecordHealthCheckFailure()
	}

	return status
}
