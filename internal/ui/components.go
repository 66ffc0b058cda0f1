package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/alorle/smogwatch/internal/country"
	"github.com/alorle/smogwatch/internal/report"
)

const (
	// ResultsID is the element search results are swapped into.
	ResultsID = "results"
	// LoaderID is the indicator shown while a search is in flight.
	LoaderID = "loader"

	htmxScript = "https://unpkg.com/htmx.org@2.0.4"
	iconsCSS   = "https://fonts.googleapis.com/icon?family=Material+Icons"

	// Error responses carry inline messages, so htmx must swap them too.
	htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":".*","swap":true}]}`
)

// FormState is what the search form shows.
type FormState struct {
	Value     string
	Error     string
	Countries []string
	// OOB marks the form for an htmx out-of-band swap alongside a results fragment.
	OOB bool
}

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		h.raw(`<meta name="htmx-config"`)
		h.attr("content", htmxConfig)
		h.raw(`>`)
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", iconsCSS)
		h.raw(`><link rel="stylesheet" href="/static/style.css">`)
		h.raw(`<script`)
		h.attr("src", htmxScript)
		h.raw(`></script></head><body><main class="container">`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// Page is the search page: the form, the loader and the results area,
// pre-filled with results when rendered after a non-htmx search.
func Page(form FormState, results templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1 class="title">smogwatch</h1>`)
		if h.err != nil {
			return h.err
		}
		if err := SearchForm(form).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`<div class="progress htmx-indicator"`)
		h.attr("id", LoaderID)
		h.raw(`><div class="indeterminate"></div></div><div`)
		h.attr("id", ResultsID)
		h.raw(`>`)
		if h.err != nil {
			return h.err
		}
		if results != nil {
			if err := results.Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw(`</div>`)
		return h.err
	})
	return Layout("smogwatch", body)
}

// SearchForm renders the country form. A non-empty Error marks the input
// invalid and shows the message under it.
func SearchForm(state FormState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form id="search-form" action="/search" method="get" hx-get="/search"`)
		h.attr("hx-target", "#"+ResultsID)
		h.attr("hx-indicator", "#"+LoaderID)
		if state.OOB {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`><div class="input-field">`)
		h.raw(`<input id="country" name="country" type="text" list="countries" autocomplete="off"`)
		h.attr("maxlength", fmt.Sprint(country.MaxNameLength))
		h.attr("data-error-message", country.EmptyNameMessage)
		h.attr("value", state.Value)
		if state.Error != "" {
			h.raw(` class="invalid" aria-invalid="true"`)
		}
		h.raw(`><label for="country">Country</label><span class="helper-text">`)
		h.text(state.Error)
		h.raw(`</span></div><datalist id="countries">`)
		for _, name := range state.Countries {
			h.raw(`<option`)
			h.attr("value", name)
			h.raw(`></option>`)
		}
		h.raw(`</datalist><button type="submit" class="btn">Search</button></form>`)
		return h.err
	})
}

// Results renders a report as a list of collapsible cities.
func Results(r report.Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h5 class="header">`)
		h.text(r.Header())
		h.raw(`</h5>`)
		if r.Stale {
			h.raw(`<p class="stale">Live data is unavailable. Showing results from `)
			h.text(r.FetchedAt.UTC().Format("2006-01-02 15:04 MST"))
			h.raw(`.</p>`)
		}
		if r.Empty() {
			h.raw(`<p class="empty">No measurements found</p>`)
			return h.err
		}
		h.raw(`<ul id="cities-list" class="collapsible">`)
		for _, c := range r.Cities {
			h.raw(`<li><details><summary class="collapsible-header"><i class="material-icons">location_city</i>`)
			h.text(c.Name)
			h.raw(`<span class="badge">`)
			h.text(fmt.Sprintf("%.1f %s", c.Value, c.Unit))
			h.raw(`</span></summary><div class="collapsible-body"><span>`)
			h.text(c.Description)
			h.raw(`</span></div></details></li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
}

// ErrorMessage renders a failed search in the results area.
func ErrorMessage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<p class="error" role="alert">`)
		h.text(message)
		h.raw(`</p>`)
		return h.err
	})
}

// Fragment joins components for a single htmx response.
func Fragment(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
