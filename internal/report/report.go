package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alorle/smogwatch/internal/city"
	"github.com/alorle/smogwatch/internal/country"
)

// Report is the result of one country search: its most polluted cities,
// worst first, each with a short description.
type Report struct {
	ID        uuid.UUID
	Country   country.Country
	Cities    []city.City
	FetchedAt time.Time
	// Stale is set when the report came from the cache because a refresh failed.
	Stale bool
}

// New creates a Report with a fresh ID.
func New(c country.Country, cities []city.City, fetchedAt time.Time) (Report, error) {
	if c.Slug() == "" {
		return Report{}, ErrEmptyCountry
	}
	if cities == nil {
		cities = []city.City{}
	}
	return Report{
		ID:        uuid.New(),
		Country:   c,
		Cities:    cities,
		FetchedAt: fetchedAt,
	}, nil
}

// Header is the heading shown above the city list.
func (r Report) Header() string {
	return fmt.Sprintf("Most polluted cities in %s:", r.Country.Name())
}

// Empty reports whether no city had a usable measurement.
func (r Report) Empty() bool {
	return len(r.Cities) == 0
}

// Expired reports whether the report is older than ttl at now.
func (r Report) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.FetchedAt) >= ttl
}

// AsStale returns a copy flagged as served from the cache.
func (r Report) AsStale() Report {
	r.Stale = true
	return r
}
