package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alorle/smogwatch/internal/city"
	"github.com/alorle/smogwatch/internal/country"
	"github.com/alorle/smogwatch/internal/metrics"
	"github.com/alorle/smogwatch/internal/port/driven"
	"github.com/alorle/smogwatch/internal/report"
)

// ErrUpstreamUnavailable is returned when air-quality data could not be
// fetched and there is no earlier report to fall back to.
var ErrUpstreamUnavailable = errors.New("air quality data is unavailable")

// Search outcomes, used as metric labels.
const (
	outcomeFresh   = "fresh"
	outcomeCached  = "cached"
	outcomeStale   = "stale"
	outcomeInvalid = "invalid"
	outcomeUnknown = "unknown"
	outcomeFailed  = "failed"
)

// SearchOptions tunes PollutionService.
type SearchOptions struct {
	CacheTTL  time.Duration
	CityLimit int
	Parameter string
}

// PollutionService answers "which cities of this country are the most polluted".
type PollutionService struct {
	catalog      *country.Catalog
	source       driven.AirQualitySource
	encyclopedia driven.Encyclopedia
	repo         driven.ReportRepository
	logger       *slog.Logger
	opts         SearchOptions
	group        singleflight.Group
	now          func() time.Time
}

// NewPollutionService creates a new PollutionService.
// Zero options fall back to a one hour cache, ten cities and PM2.5.
func NewPollutionService(
	catalog *country.Catalog,
	source driven.AirQualitySource,
	encyclopedia driven.Encyclopedia,
	repo driven.ReportRepository,
	logger *slog.Logger,
	opts SearchOptions,
) *PollutionService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if opts.CityLimit <= 0 {
		opts.CityLimit = city.DefaultLimit
	}
	if opts.Parameter == "" {
		opts.Parameter = city.DefaultParameter
	}
	return &PollutionService{
		catalog:      catalog,
		source:       source,
		encyclopedia: encyclopedia,
		repo:         repo,
		logger:       logger,
		opts:         opts,
		now:          time.Now,
	}
}

// Search validates the country name, resolves it and returns its report.
// A cached report younger than the cache TTL is returned as is. Otherwise the
// air-quality source and then the encyclopedia are queried. If the
// air-quality source fails, a cached report is returned flagged as stale.
//
// Returns country.ErrEmptyName or country.ErrNameTooLong for invalid input,
// country.ErrUnknownCountry for names outside the catalog, and
// ErrUpstreamUnavailable when no data can be served.
func (s *PollutionService) Search(ctx context.Context, input string) (report.Report, error) {
	name, err := country.Validate(input)
	if err != nil {
		metrics.RecordSearch(outcomeInvalid)
		return report.Report{}, err
	}

	ctry, err := s.catalog.Lookup(name)
	if err != nil {
		metrics.RecordSearch(outcomeUnknown)
		return report.Report{}, err
	}

	cached, cacheErr := s.repo.FindBySlug(ctx, ctry.Slug())
	if cacheErr == nil && !cached.Expired(s.now(), s.opts.CacheTTL) {
		s.logger.Debug("serving cached report", "country", ctry.Slug(), "fetched_at", cached.FetchedAt)
		metrics.RecordSearch(outcomeCached)
		return cached, nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, report.ErrReportNotFound) {
		s.logger.Warn("failed to read cached report", "country", ctry.Slug(), "error", cacheErr)
	}

	// Concurrent searches for one country share a single upstream round trip.
	// The shared call must outlive any single caller's cancellation.
	ch := s.group.DoChan(ctry.Slug(), func() (interface{}, error) {
		return s.refresh(context.WithoutCancel(ctx), ctry)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return report.Report{}, ctx.Err()
	case res = <-ch:
	}

	if res.Err != nil {
		if cacheErr == nil {
			s.logger.Warn("serving stale report", "country", ctry.Slug(), "fetched_at", cached.FetchedAt, "error", res.Err)
			metrics.RecordSearch(outcomeStale)
			return cached.AsStale(), nil
		}
		metrics.RecordSearch(outcomeFailed)
		return report.Report{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, res.Err)
	}

	metrics.RecordSearch(outcomeFresh)
	return res.Val.(report.Report), nil
}

// refresh runs both upstream calls for one country and stores the result
// when it is complete.
func (s *PollutionService) refresh(ctx context.Context, ctry country.Country) (report.Report, error) {
	measurements, err := s.source.LatestByCountry(ctx, ctry.Slug(), s.opts.Parameter)
	if err != nil {
		return report.Report{}, fmt.Errorf("fetching measurements for %s: %w", ctry.Slug(), err)
	}

	ranked := city.Rank(measurements, s.opts.CityLimit)

	var (
		extracts    map[string]string
		describeErr error
	)
	if len(ranked) > 0 {
		extracts, describeErr = s.encyclopedia.Extracts(ctx, city.Names(ranked))
		if describeErr != nil {
			// Descriptions are optional; cities are still worth showing.
			s.logger.Warn("failed to fetch city descriptions", "country", ctry.Slug(), "error", describeErr)
		}
	}

	cities := make([]city.City, len(ranked))
	for i, m := range ranked {
		cities[i] = city.FromMeasurement(m, extracts[m.City()])
	}

	rep, err := report.New(ctry, cities, s.now())
	if err != nil {
		return report.Report{}, err
	}

	// A report without descriptions is returned but not cached, so the
	// next search retries the encyclopedia.
	if describeErr == nil {
		if err := s.repo.Save(ctx, rep); err != nil {
			s.logger.Warn("failed to cache report", "country", ctry.Slug(), "error", err)
		}
	}

	s.logger.Info("report refreshed",
		"country", ctry.Slug(),
		"measurements", len(measurements),
		"cities", len(cities),
	)

	return rep, nil
}

// Recent returns up to limit past reports, most recent first.
func (s *PollutionService) Recent(ctx context.Context, limit int) ([]report.Report, error) {
	return s.repo.FindRecent(ctx, limit)
}

// CountryNames lists the names the search form suggests.
func (s *PollutionService) CountryNames() []string {
	return s.catalog.Names()
}
