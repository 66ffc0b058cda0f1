package driver

import (
	"net/http"

	"github.com/alorle/smogwatch/internal/application"
)

// HealthHTTPHandler handles HTTP requests for health checks.
type HealthHTTPHandler struct {
	service *application.HealthService
}

// NewHealthHTTPHandler creates a new HTTP handler for health checks.
func NewHealthHTTPHandler(service *application.HealthService) *HealthHTTPHandler {
	return &HealthHTTPHandler{service: service}
}

// healthResponse represents the JSON response for health check endpoint.
type healthResponse struct {
	Status    string            `json:"status"`
	DB        string            `json:"db"`
	OpenAQ    string            `json:"openaq"`
	Wikipedia string            `json:"wikipedia"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// ServeHTTP handles GET /health
func (h *HealthHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := h.service.Check(r.Context())

	resp := healthResponse{
		Status:    status.Status,
		DB:        status.DB.Status,
		OpenAQ:    status.OpenAQ.Status,
		Wikipedia: status.Wikipedia.Status,
	}
	for name, c := range map[string]application.ComponentHealth{
		"db":        status.DB,
		"openaq":    status.OpenAQ,
		"wikipedia": status.Wikipedia,
	} {
		if c.Error == "" {
			continue
		}
		if resp.Errors == nil {
			resp.Errors = make(map[string]string)
		}
		resp.Errors[name] = c.Error
	}

	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
