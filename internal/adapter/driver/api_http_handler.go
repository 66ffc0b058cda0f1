package driver

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/report"
)

const defaultRecentLimit = 10

// APIHTTPHandler serves the JSON API.
type APIHTTPHandler struct {
	service *application.PollutionService
	swagger *openapi3.T
	logger  *slog.Logger
}

// NewAPIHTTPHandler creates a new HTTP handler for the JSON API.
func NewAPIHTTPHandler(service *application.PollutionService, swagger *openapi3.T, logger *slog.Logger) *APIHTTPHandler {
	return &APIHTTPHandler{service: service, swagger: swagger, logger: logger}
}

// cityResponse represents a ranked city in JSON format.
type cityResponse struct {
	Name        string  `json:"name"`
	Location    string  `json:"location,omitempty"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// reportResponse represents a report in JSON format.
type reportResponse struct {
	ID        string         `json:"id"`
	Country   string         `json:"country"`
	Slug      string         `json:"slug"`
	Header    string         `json:"header"`
	Cities    []cityResponse `json:"cities"`
	FetchedAt string         `json:"fetched_at"`
	Stale     bool           `json:"stale"`
}

func toReportResponse(r report.Report) reportResponse {
	cities := make([]cityResponse, len(r.Cities))
	for i, c := range r.Cities {
		cities[i] = cityResponse{
			Name:        c.Name,
			Location:    c.Location,
			Value:       c.Value,
			Unit:        c.Unit,
			Description: c.Description,
		}
	}
	return reportResponse{
		ID:        r.ID.String(),
		Country:   r.Country.Name(),
		Slug:      r.Country.Slug(),
		Header:    r.Header(),
		Cities:    cities,
		FetchedAt: r.FetchedAt.UTC().Format(time.RFC3339),
		Stale:     r.Stale,
	}
}

// ServeCities handles GET /api/cities?country=
func (h *APIHTTPHandler) ServeCities(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("country")

	rep, err := h.service.Search(r.Context(), input)
	if err != nil {
		failure := classifySearchError(input, err)
		if failure.status >= http.StatusInternalServerError {
			h.logger.Error("search failed", "country", input, "error", err)
		}
		writeError(w, failure.status, failure.message)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

// ServeRecent handles GET /api/recent?limit=
func (h *APIHTTPHandler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	reports, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list recent reports", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recent searches")
		return
	}

	resp := make([]reportResponse, len(reports))
	for i, rep := range reports {
		resp[i] = toReportResponse(rep)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ServeOpenAPI handles GET /api/openapi.json
func (h *APIHTTPHandler) ServeOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.swagger)
}
