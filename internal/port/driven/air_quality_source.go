package driven

import (
	"context"

	"github.com/alorle/smogwatch/internal/city"
)

// AirQualitySource defines the interface for fetching the latest pollutant
// readings of a country. This is a driven port implemented by concrete
// adapters (e.g., the OpenAQ HTTP client).
type AirQualitySource interface {
	// LatestByCountry returns the latest readings of parameter for every
	// location in the country identified by slug.
	LatestByCountry(ctx context.Context, slug, parameter string) ([]city.Measurement, error)

	// Ping checks if the source is reachable.
	Ping(ctx context.Context) error
}
