package driver

import (
	"log/slog"
	"net/http"
)

// Routes groups the handlers mounted by NewRouter.
type Routes struct {
	Page    *PageHTTPHandler
	API     *APIHTTPHandler
	Health  *HealthHTTPHandler
	Static  *StaticHandler
	Metrics http.Handler
	// APIValidator wraps every /api/ route, typically api.RequestValidator.
	APIValidator func(http.Handler) http.Handler
}

// NewRouter builds the HTTP routing tree with request logging applied.
func NewRouter(routes Routes, logger *slog.Logger) http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/cities", routes.API.ServeCities)
	apiMux.HandleFunc("GET /api/recent", routes.API.ServeRecent)
	apiMux.HandleFunc("GET /api/openapi.json", routes.API.ServeOpenAPI)

	var apiHandler http.Handler = apiMux
	if routes.APIValidator != nil {
		apiHandler = routes.APIValidator(apiMux)
	}

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /{$}", routes.Page.ServeIndex)
	rootMux.HandleFunc("GET /search", routes.Page.ServeSearch)
	rootMux.Handle("/api/", apiHandler)
	rootMux.Handle("/health", routes.Health)
	rootMux.Handle("GET /static/", http.StripPrefix("/static", routes.Static))
	if routes.Metrics != nil {
		rootMux.Handle("GET /metrics", routes.Metrics)
	}

	return RequestLogger(logger)(rootMux)
}
