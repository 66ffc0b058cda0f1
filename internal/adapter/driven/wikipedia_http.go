package driven

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultWikipediaURL   = "https://en.wikipedia.org"
	wikipediaUserAgent    = "smogwatch/1.0 (https://github.com/alorle/smogwatch)"
	// wikipediaExtractLimit is the most intro extracts the API returns per request.
	wikipediaExtractLimit = 20
)

// WikipediaHTTPAdapter implements the Encyclopedia port using the MediaWiki
// query API with the TextExtracts module.
type WikipediaHTTPAdapter struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWikipediaHTTPAdapter creates a new Wikipedia client.
// If baseURL is empty, English Wikipedia is used.
// If client is nil, a client with a 15-second timeout is created.
func NewWikipediaHTTPAdapter(baseURL string, client *http.Client, logger *slog.Logger) *WikipediaHTTPAdapter {
	if baseURL == "" {
		baseURL = defaultWikipediaURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &WikipediaHTTPAdapter{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// queryResponse is the body of action=query&prop=extracts.
type queryResponse struct {
	Query struct {
		Normalized []titleMapping      `json:"normalized"`
		Redirects  []titleMapping      `json:"redirects"`
		Pages      map[string]pageJSON `json:"pages"`
	} `json:"query"`
}

type titleMapping struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type pageJSON struct {
	PageID  int     `json:"pageid"`
	Title   string  `json:"title"`
	Extract string  `json:"extract"`
	Missing *string `json:"missing"`
}

// buildQuery turns a parameter map into a query string. The response format
// is always JSON whatever the map says.
func buildQuery(config map[string]string) url.Values {
	params := url.Values{}
	for k, v := range config {
		params.Set(k, v)
	}
	params.Set("format", "json")
	return params
}

// Extracts returns the introductory extract of each title, keyed by the
// title as requested. Title normalisation and redirects are followed back to
// the requested title. Missing articles map to "". Titles are requested in
// batches of wikipediaExtractLimit.
func (a *WikipediaHTTPAdapter) Extracts(ctx context.Context, titles []string) (map[string]string, error) {
	extracts := make(map[string]string, len(titles))
	for start := 0; start < len(titles); start += wikipediaExtractLimit {
		end := min(start+wikipediaExtractLimit, len(titles))
		if err := a.fetchExtracts(ctx, titles[start:end], extracts); err != nil {
			return nil, err
		}
	}
	return extracts, nil
}

// fetchExtracts requests one batch of titles and adds them to extracts.
func (a *WikipediaHTTPAdapter) fetchExtracts(ctx context.Context, titles []string, extracts map[string]string) error {
	params := buildQuery(map[string]string{
		"action":    "query",
		"prop":      "extracts",
		"exintro":   "true",
		"exlimit":   "max",
		"redirects": "1",
		"titles":    strings.Join(titles, "|"),
	})
	reqURL := fmt.Sprintf("%s/w/api.php?%s", a.baseURL, params.Encode())

	a.logger.Debug("requesting extracts", "titles", len(titles))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating extracts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", wikipediaUserAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("failed to reach wikipedia", "error", err)
		return fmt.Errorf("fetching extracts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		a.logger.Error("wikipedia returned error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	var result queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding extracts: %w", err)
	}

	byTitle := make(map[string]string, len(result.Query.Pages))
	for _, p := range result.Query.Pages {
		if p.Missing != nil {
			continue
		}
		byTitle[p.Title] = p.Extract
	}

	normalized := mappingIndex(result.Query.Normalized)
	redirects := mappingIndex(result.Query.Redirects)

	for _, requested := range titles {
		title := requested
		if to, ok := normalized[title]; ok {
			title = to
		}
		if to, ok := redirects[title]; ok {
			title = to
		}
		extracts[requested] = byTitle[title]
	}

	return nil
}

// Ping checks if the Wikipedia API is reachable.
func (a *WikipediaHTTPAdapter) Ping(ctx context.Context) error {
	params := buildQuery(map[string]string{"action": "query", "meta": "siteinfo"})
	reqURL := fmt.Sprintf("%s/w/api.php?%s", a.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}
	req.Header.Set("User-Agent", wikipediaUserAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}
	return nil
}

func mappingIndex(mappings []titleMapping) map[string]string {
	idx := make(map[string]string, len(mappings))
	for _, m := range mappings {
		idx[m.From] = m.To
	}
	return idx
}
