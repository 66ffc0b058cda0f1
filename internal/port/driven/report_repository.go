package driven

import (
	"context"

	"github.com/alorle/smogwatch/internal/report"
)

// ReportRepository defines the interface for report persistence operations.
// This is a driven port that will be implemented by concrete adapters (e.g., BoltDB).
type ReportRepository interface {
	// Save persists a report, replacing any earlier report for the same country.
	Save(ctx context.Context, r report.Report) error

	// FindBySlug retrieves the report of a country. Returns report.ErrReportNotFound
	// if the country was never searched.
	FindBySlug(ctx context.Context, slug string) (report.Report, error)

	// FindRecent retrieves up to limit reports, most recently fetched first.
	FindRecent(ctx context.Context, limit int) ([]report.Report, error)

	// Ping checks if the repository (database) is accessible and operational.
	Ping(ctx context.Context) error
}
