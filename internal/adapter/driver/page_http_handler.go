package driver

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/alorle/smogwatch/internal/application"
	"github.com/alorle/smogwatch/internal/ui"
)

const (
	// lastCountryCookie remembers the last country searched successfully.
	lastCountryCookie = "last_country"
	lastCountryMaxAge = 365 * 24 * time.Hour

	htmxRequestHeader = "HX-Request"
)

// PageHTTPHandler serves the HTML search page and its results.
type PageHTTPHandler struct {
	service *application.PollutionService
	logger  *slog.Logger
}

// NewPageHTTPHandler creates a new HTTP handler for the search page.
func NewPageHTTPHandler(service *application.PollutionService, logger *slog.Logger) *PageHTTPHandler {
	return &PageHTTPHandler{service: service, logger: logger}
}

// ServeIndex handles GET / with the form pre-filled from the last search.
func (h *PageHTTPHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	form := ui.FormState{
		Value:     lastCountry(r),
		Countries: h.service.CountryNames(),
	}
	h.render(w, r, http.StatusOK, form, nil)
}

// ServeSearch handles GET /search?country=. htmx requests get a fragment
// for the results area, anything else gets the whole page.
func (h *PageHTTPHandler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("country")
	form := ui.FormState{
		Value:     strings.TrimSpace(input),
		Countries: h.service.CountryNames(),
	}

	rep, err := h.service.Search(r.Context(), input)
	if err != nil {
		failure := classifySearchError(form.Value, err)
		if failure.status >= http.StatusInternalServerError {
			h.logger.Error("search failed", "country", form.Value, "error", err)
		}
		if failure.invalid {
			form.Error = failure.message
			h.render(w, r, failure.status, form, nil)
			return
		}
		h.render(w, r, failure.status, form, ui.ErrorMessage(failure.message))
		return
	}

	form.Value = rep.Country.Name()
	http.SetCookie(w, &http.Cookie{
		Name:     lastCountryCookie,
		Value:    url.QueryEscape(rep.Country.Name()),
		Path:     "/",
		MaxAge:   int(lastCountryMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.render(w, r, http.StatusOK, form, ui.Results(rep))
}

func (h *PageHTTPHandler) render(w http.ResponseWriter, r *http.Request, status int, form ui.FormState, results templ.Component) {
	w.Header().Add("Vary", htmxRequestHeader)

	var page templ.Component
	if isHTMXRequest(r) {
		if results == nil {
			results = ui.Fragment()
		}
		form.OOB = true
		page = ui.Fragment(results, ui.SearchForm(form))
	} else {
		page = ui.Page(form, results)
	}

	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// isHTMXRequest reports whether the request was initiated by htmx.
func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(htmxRequestHeader), "true")
}

func lastCountry(r *http.Request) string {
	c, err := r.Cookie(lastCountryCookie)
	if err != nil {
		return ""
	}
	name, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return name
}
