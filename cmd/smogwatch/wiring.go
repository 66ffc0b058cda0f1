package main

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/alorle/smogwatch/internal/adapter/driven"
	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/circuitbreaker"
	"github.com/alorle/smogwatch/internal/config"
	"github.com/alorle/smogwatch/internal/country"
	"github.com/alorle/smogwatch/internal/metrics"
	port "github.com/alorle/smogwatch/internal/port/driven"
)

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

func newBreaker(name string, logger *slog.Logger) *circuitbreaker.Breaker {
	metrics.SetCircuitBreakerState(name, circuitbreaker.StateClosed.String())
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		FailureThreshold: 5,
		HalfOpenRequests: 1,
		Logger:           logger,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, to.String())
		},
	})
}

// newUpstreams builds both upstream clients behind their circuit breakers.
func newUpstreams(cfg config.Config, logger *slog.Logger) (port.AirQualitySource, port.Encyclopedia) {
	client := &http.Client{Timeout: cfg.UpstreamTimeout}

	source := driven.NewGuardedAirQualitySource(
		driven.NewOpenAQHTTPAdapter(cfg.OpenAQURL, client, logger),
		newBreaker("openaq", logger),
	)
	encyclopedia := driven.NewGuardedEncyclopedia(
		driven.NewWikipediaHTTPAdapter(cfg.WikipediaURL, client, logger),
		newBreaker("wikipedia", logger),
	)
	return source, encyclopedia
}

func newPollutionService(
	cfg config.Config,
	source port.AirQualitySource,
	encyclopedia port.Encyclopedia,
	repo port.ReportRepository,
	logger *slog.Logger,
) *application.PollutionService {
	return application.NewPollutionService(
		country.NewCatalog(country.DefaultSlugs),
		source,
		encyclopedia,
		repo,
		logger,
		application.SearchOptions{
			CacheTTL:  cfg.CacheTTL,
			CityLimit: cfg.CityLimit,
			Parameter: cfg.Parameter,
		},
	)
}
