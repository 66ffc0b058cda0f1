package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/alorle/smogwatch/internal/city"
	"github.com/alorle/smogwatch/internal/report"
)

// mockAirQualitySource is a mock implementation of driven.AirQualitySource for testing.
type mockAirQualitySource struct {
	latestFunc func(ctx context.Context, slug, parameter string) ([]city.Measurement, error)
	pingFunc   func(ctx context.Context) error
}

func (m *mockAirQualitySource) LatestByCountry(ctx context.Context, slug, parameter string) ([]city.Measurement, error) {
	if m.latestFunc != nil {
		return m.latestFunc(ctx, slug, parameter)
	}
	return []city.Measurement{}, nil
}

func (m *mockAirQualitySource) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// mockEncyclopedia is a mock implementation of driven.Encyclopedia for testing.
type mockEncyclopedia struct {
	extractsFunc func(ctx context.Context, titles []string) (map[string]string, error)
	pingFunc     func(ctx context.Context) error
}

func (m *mockEncyclopedia) Extracts(ctx context.Context, titles []string) (map[string]string, error) {
	if m.extractsFunc != nil {
		return m.extractsFunc(ctx, titles)
	}
	return map[string]string{}, nil
}

func (m *mockEncyclopedia) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// mockReportRepository is a mock implementation of driven.ReportRepository for testing.
type mockReportRepository struct {
	saveFunc       func(ctx context.Context, r report.Report) error
	findBySlugFunc func(ctx context.Context, slug string) (report.Report, error)
	findRecentFunc func(ctx context.Context, limit int) ([]report.Report, error)
	pingFunc       func(ctx context.Context) error
}

func (m *mockReportRepository) Save(ctx context.Context, r report.Report) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, r)
	}
	return nil
}

func (m *mockReportRepository) FindBySlug(ctx context.Context, slug string) (report.Report, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, slug)
	}
	return report.Report{}, report.ErrReportNotFound
}

func (m *mockReportRepository) FindRecent(ctx context.Context, limit int) ([]report.Report, error) {
	if m.findRecentFunc != nil {
		return m.findRecentFunc(ctx, limit)
	}
	return []report.Report{}, nil
}

func (m *mockReportRepository) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
