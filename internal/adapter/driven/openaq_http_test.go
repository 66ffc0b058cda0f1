package driven

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alorle/smogwatch/internal/city"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const latestJSON = `{
	"meta": {"name": "openaq-api", "found": 4},
	"results": [
		{"location": "Katowice, ul. Kossutha", "city": "Katowice", "country": "PL",
		 "measurements": [{"parameter": "pm25", "value": 81.2, "unit": "µg/m³", "lastUpdated": "2024-01-10T12:00:00.000Z"}]},
		{"location": "Opole, Koszyka", "city": "Opole", "country": "PL",
		 "measurements": [{"parameter": "pm25", "value": 22.5, "unit": "µg/m³", "lastUpdated": "2024-01-10T12:00:00Z"}]},
		{"location": "Empty station", "city": "Rybnik", "country": "PL", "measurements": []},
		{"location": "Nowhere", "city": "", "country": "PL",
		 "measurements": [{"parameter": "pm25", "value": 99, "unit": "µg/m³", "lastUpdated": "bad"}]}
	]
}`

func TestNewOpenAQHTTPAdapter(t *testing.T) {
	t.Run("empty URL uses default", func(t *testing.T) {
		a := NewOpenAQHTTPAdapter("", nil, discardLogger())
		if a.baseURL != defaultOpenAQURL {
			t.Errorf("expected %q, got %q", defaultOpenAQURL, a.baseURL)
		}
		if a.httpClient.Timeout != defaultHTTPTimeout {
			t.Errorf("expected timeout %v, got %v", defaultHTTPTimeout, a.httpClient.Timeout)
		}
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		a := NewOpenAQHTTPAdapter("http://example.com/", nil, discardLogger())
		if a.baseURL != "http://example.com" {
			t.Errorf("unexpected base URL %q", a.baseURL)
		}
	})
}

func TestOpenAQHTTPAdapter_LatestByCountry(t *testing.T) {
	t.Run("decodes usable measurements", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/latest" {
				t.Errorf("expected path /v1/latest, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("country") != "PL" {
				t.Errorf("expected country PL, got %q", q.Get("country"))
			}
			if q.Get("parameter") != "pm25" {
				t.Errorf("expected parameter pm25, got %q", q.Get("parameter"))
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(latestJSON))
		}))
		defer server.Close()

		a := NewOpenAQHTTPAdapter(server.URL, nil, discardLogger())
		got, err := a.LatestByCountry(context.Background(), "PL", "pm25")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if diff := cmp.Diff([]string{"Katowice", "Opole"}, city.Names(got)); diff != "" {
			t.Errorf("cities mismatch (-want +got):\n%s", diff)
		}
		if got[0].Value() != 81.2 {
			t.Errorf("expected value 81.2, got %v", got[0].Value())
		}
		want := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
		if !got[0].LastUpdated().Equal(want) {
			t.Errorf("expected lastUpdated %v, got %v", want, got[0].LastUpdated())
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer server.Close()

		a := NewOpenAQHTTPAdapter(server.URL, nil, discardLogger())
		_, err := a.LatestByCountry(context.Background(), "PL", "pm25")
		if err == nil || !strings.Contains(err.Error(), "410") {
			t.Fatalf("expected status error, got %v", err)
		}
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results": [`))
		}))
		defer server.Close()

		a := NewOpenAQHTTPAdapter(server.URL, nil, discardLogger())
		if _, err := a.LatestByCountry(context.Background(), "PL", "pm25"); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(latestJSON))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		a := NewOpenAQHTTPAdapter(server.URL, nil, discardLogger())
		if _, err := a.LatestByCountry(ctx, "PL", "pm25"); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestOpenAQHTTPAdapter_Ping(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		a := NewOpenAQHTTPAdapter(server.URL, nil, discardLogger())
		if err := a.Ping(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		a := NewOpenAQHTTPAdapter(server.URL, nil, discardLogger())
		if err := a.Ping(context.Background()); err == nil {
			t.Error("expected error for 502")
		}
	})
}
