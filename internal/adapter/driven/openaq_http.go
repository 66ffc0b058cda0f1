package driven

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alorle/smogwatch/internal/city"
)

const (
	defaultOpenAQURL   = "https://api.openaq.org"
	defaultHTTPTimeout = 15 * time.Second
	// openAQPageLimit is large enough to cover every station of a country
	// in one page; ranking needs all of them.
	openAQPageLimit = 10000
)

// OpenAQHTTPAdapter implements the AirQualitySource port using the OpenAQ
// "latest" endpoint.
type OpenAQHTTPAdapter struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenAQHTTPAdapter creates a new OpenAQ client.
// If baseURL is empty, the public API is used.
// If client is nil, a client with a 15-second timeout is created.
func NewOpenAQHTTPAdapter(baseURL string, client *http.Client, logger *slog.Logger) *OpenAQHTTPAdapter {
	if baseURL == "" {
		baseURL = defaultOpenAQURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OpenAQHTTPAdapter{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// latestResponse is the body of GET /v1/latest.
type latestResponse struct {
	Results []latestResult `json:"results"`
}

type latestResult struct {
	Location     string              `json:"location"`
	City         string              `json:"city"`
	Country      string              `json:"country"`
	Measurements []latestMeasurement `json:"measurements"`
}

type latestMeasurement struct {
	Parameter   string  `json:"parameter"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	LastUpdated string  `json:"lastUpdated"`
}

// LatestByCountry returns the latest reading of parameter for every location
// in the country. Locations without measurements or without a city name are skipped.
func (a *OpenAQHTTPAdapter) LatestByCountry(ctx context.Context, slug, parameter string) ([]city.Measurement, error) {
	params := url.Values{}
	params.Set("country", slug)
	params.Set("parameter", parameter)
	params.Set("limit", strconv.Itoa(openAQPageLimit))

	reqURL := fmt.Sprintf("%s/v1/latest?%s", a.baseURL, params.Encode())

	a.logger.Debug("requesting latest measurements", "country", slug, "parameter", parameter, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating latest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("failed to reach openaq", "country", slug, "error", err)
		return nil, fmt.Errorf("fetching latest measurements: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		a.logger.Error("openaq returned error", "country", slug, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("openaq returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding latest measurements: %w", err)
	}

	measurements := make([]city.Measurement, 0, len(result.Results))
	for _, r := range result.Results {
		if len(r.Measurements) == 0 {
			continue
		}
		// The first measurement is the one requested by the parameter filter.
		first := r.Measurements[0]
		m, err := city.NewMeasurement(r.City, r.Location, first.Parameter, first.Value, first.Unit, parseTimestamp(first.LastUpdated))
		if err != nil {
			a.logger.Debug("skipping location without city", "location", r.Location)
			continue
		}
		measurements = append(measurements, m)
	}

	a.logger.Info("openaq returned measurements", "country", slug, "locations", len(result.Results), "usable", len(measurements))

	return measurements, nil
}

// Ping checks if the OpenAQ API is reachable.
func (a *OpenAQHTTPAdapter) Ping(ctx context.Context) error {
	reqURL := a.baseURL + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openaq not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("openaq returned status %d", resp.StatusCode)
	}
	return nil
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds.
// Unparseable values become the zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
