package driver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/memory"
)

func TestHealthHTTPHandler_ServeHTTP(t *testing.T) {
	t.Run("GET /health returns 200 when all dependencies are healthy", func(t *testing.T) {
		service := application.NewHealthService(memory.NewReportRepository(), &mockAirQualitySource{}, &mockEncyclopedia{})
		handler := NewHealthHTTPHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}

		var resp healthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Status != "ok" || resp.DB != "ok" || resp.OpenAQ != "ok" || resp.Wikipedia != "ok" {
			t.Errorf("expected all ok, got %+v", resp)
		}
		if resp.Errors != nil {
			t.Errorf("expected no errors, got %v", resp.Errors)
		}
	})

	t.Run("GET /health returns 503 when OpenAQ is unavailable", func(t *testing.T) {
		source := &mockAirQualitySource{
			pingFunc: func(ctx context.Context) error {
				return errors.New("openaq not reachable")
			},
		}
		service := application.NewHealthService(memory.NewReportRepository(), source, &mockEncyclopedia{})
		handler := NewHealthHTTPHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rec.Code)
		}

		var resp healthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Status != "degraded" {
			t.Errorf("expected status 'degraded', got '%s'", resp.Status)
		}
		if resp.OpenAQ != "error" {
			t.Errorf("expected openaq 'error', got '%s'", resp.OpenAQ)
		}
		if resp.Wikipedia != "ok" {
			t.Errorf("expected wikipedia 'ok', got '%s'", resp.Wikipedia)
		}
		if resp.Errors["openaq"] != "openaq not reachable" {
			t.Errorf("unexpected errors %v", resp.Errors)
		}
	})

	t.Run("POST /health returns 405", func(t *testing.T) {
		service := application.NewHealthService(memory.NewReportRepository(), &mockAirQualitySource{}, &mockEncyclopedia{})
		handler := NewHealthHTTPHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status 405, got %d", rec.Code)
		}
	})
}
