package driven

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alorle/smogwatch/internal/circuitbreaker"
	"github.com/alorle/smogwatch/internal/city"
)

type stubSource struct {
	calls int
	err   error
}

func (s *stubSource) LatestByCountry(ctx context.Context, slug, parameter string) ([]city.Measurement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	m, _ := city.NewMeasurement("Opole", "", parameter, 1, "µg/m³", time.Time{})
	return []city.Measurement{m}, nil
}

func (s *stubSource) Ping(ctx context.Context) error { return s.err }

type stubEncyclopedia struct {
	calls int
	err   error
}

func (s *stubEncyclopedia) Extracts(ctx context.Context, titles []string) (map[string]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return map[string]string{"Opole": "<p>Opole</p>"}, nil
}

func (s *stubEncyclopedia) Ping(ctx context.Context) error { return s.err }

func TestGuardedAirQualitySource(t *testing.T) {
	t.Run("passes results through", func(t *testing.T) {
		src := &stubSource{}
		g := NewGuardedAirQualitySource(src, circuitbreaker.New(circuitbreaker.Config{Name: "openaq-test"}))

		got, err := g.LatestByCountry(context.Background(), "PL", "pm25")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].City() != "Opole" {
			t.Errorf("unexpected measurements %v", city.Names(got))
		}
	})

	t.Run("opens after repeated failures", func(t *testing.T) {
		src := &stubSource{err: errors.New("down")}
		g := NewGuardedAirQualitySource(src, circuitbreaker.New(circuitbreaker.Config{
			Name:             "openaq-test",
			FailureThreshold: 2,
			Timeout:          time.Hour,
		}))

		for i := 0; i < 2; i++ {
			_, _ = g.LatestByCountry(context.Background(), "PL", "pm25")
		}
		_, err := g.LatestByCountry(context.Background(), "PL", "pm25")
		if !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			t.Errorf("expected ErrCircuitOpen, got %v", err)
		}
		if src.calls != 2 {
			t.Errorf("expected 2 upstream calls, got %d", src.calls)
		}
	})
}

func TestGuardedEncyclopedia(t *testing.T) {
	enc := &stubEncyclopedia{err: errors.New("down")}
	g := NewGuardedEncyclopedia(enc, circuitbreaker.New(circuitbreaker.Config{
		Name:             "wikipedia-test",
		FailureThreshold: 1,
		Timeout:          time.Hour,
	}))

	_, _ = g.Extracts(context.Background(), []string{"Opole"})
	if _, err := g.Extracts(context.Background(), []string{"Opole"}); !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if err := g.Ping(context.Background()); err == nil {
		t.Error("expected ping to reach the upstream and fail")
	}
}
