package driver

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/city"
	"github.com/alorle/smogwatch/internal/country"
	"github.com/alorle/smogwatch/internal/memory"
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pollutedSource returns a fixed set of measurements for any country.
func pollutedSource(t *testing.T) *mockAirQualitySource {
	t.Helper()
	return &mockAirQualitySource{
		latestFunc: func(ctx context.Context, slug, parameter string) ([]city.Measurement, error) {
			var out []city.Measurement
			for _, c := range []struct {
				name  string
				value float64
			}{{"Katowice", 80}, {"Rybnik", 60}} {
				m, err := city.NewMeasurement(c.name, c.name+" station", parameter, c.value, "µg/m³", time.Now())
				if err != nil {
					t.Errorf("failed to create measurement: %v", err)
				}
				out = append(out, m)
			}
			return out, nil
		},
	}
}

func newTestPollutionService(source *mockAirQualitySource, enc *mockEncyclopedia) *application.PollutionService {
	return application.NewPollutionService(
		country.NewCatalog(country.DefaultSlugs),
		source, enc,
		memory.NewReportRepository(),
		discardLogger(),
		application.SearchOptions{},
	)
}
