package driven

import (
	"context"
	"time"

	"github.com/alorle/smogwatch/internal/circuitbreaker"
	"github.com/alorle/smogwatch/internal/city"
	"github.com/alorle/smogwatch/internal/metrics"
	"github.com/alorle/smogwatch/internal/port/driven"
)

// GuardedAirQualitySource wraps an AirQualitySource with a circuit breaker
// and records call metrics under the breaker's name.
type GuardedAirQualitySource struct {
	next    driven.AirQualitySource
	breaker *circuitbreaker.Breaker
}

// NewGuardedAirQualitySource decorates next with breaker.
func NewGuardedAirQualitySource(next driven.AirQualitySource, breaker *circuitbreaker.Breaker) *GuardedAirQualitySource {
	return &GuardedAirQualitySource{next: next, breaker: breaker}
}

// LatestByCountry forwards the call unless the circuit is open.
func (g *GuardedAirQualitySource) LatestByCountry(ctx context.Context, slug, parameter string) ([]city.Measurement, error) {
	var measurements []city.Measurement
	err := g.breaker.Execute(func() error {
		started := time.Now()
		var err error
		measurements, err = g.next.LatestByCountry(ctx, slug, parameter)
		metrics.ObserveUpstream(g.breaker.Name(), started, err)
		return err
	})
	return measurements, err
}

// Ping bypasses the breaker so health checks see the real upstream state.
func (g *GuardedAirQualitySource) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

// GuardedEncyclopedia wraps an Encyclopedia with a circuit breaker.
type GuardedEncyclopedia struct {
	next    driven.Encyclopedia
	breaker *circuitbreaker.Breaker
}

// NewGuardedEncyclopedia decorates next with breaker.
func NewGuardedEncyclopedia(next driven.Encyclopedia, breaker *circuitbreaker.Breaker) *GuardedEncyclopedia {
	return &GuardedEncyclopedia{next: next, breaker: breaker}
}

// Extracts forwards the call unless the circuit is open.
func (g *GuardedEncyclopedia) Extracts(ctx context.Context, titles []string) (map[string]string, error) {
	var extracts map[string]string
	err := g.breaker.Execute(func() error {
		started := time.Now()
		var err error
		extracts, err = g.next.Extracts(ctx, titles)
		metrics.ObserveUpstream(g.breaker.Name(), started, err)
		return err
	})
	return extracts, err
}

// Ping bypasses the breaker.
func (g *GuardedEncyclopedia) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}
