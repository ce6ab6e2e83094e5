// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui holds the search page: the title input, the loading indicator
// and the results container, passed explicitly to the dispatcher and the
// renderer instead of being looked up from a global document.
package ui

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/pdiddy/moviefinder/internal/render"
)

// Element IDs of the page.
const (
	TitleInputID = "movieTitle"
	IndicatorID  = "loadingIndicator"
	ResultsID    = "results"
)

// Page is the state of one search page. It implements search.TitleSource,
// search.Indicator and render.Container and is safe for concurrent use.
type Page struct {
	// Action is the form target the page submits to (default "/").
	Action string

	mu      sync.Mutex
	title   string
	loading bool
	results render.Buffer
}

// NewPage returns an empty page whose form submits to action.
func NewPage(action string) *Page {
	if action == "" {
		action = "/"
	}
	return &Page{Action: action}
}

// SetTitle sets the value of the title input.
func (p *Page) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// Title returns the value of the title input.
func (p *Page) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// Show makes the loading indicator visible.
func (p *Page) Show() { p.setLoading(true) }

// Hide hides the loading indicator.
func (p *Page) Hide() { p.setLoading(false) }

func (p *Page) setLoading(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = v
}

// Loading reports whether the loading indicator is visible.
func (p *Page) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Clear empties the results container.
func (p *Page) Clear() { p.results.Clear() }

// Append adds a rendered card to the results container.
func (p *Page) Append(card template.HTML) { p.results.Append(card) }

// Results returns the cards currently in the results container.
func (p *Page) Results() []template.HTML { return p.results.Cards() }

type pageData struct {
	Action      string
	TitleID     string
	Title       string
	IndicatorID string
	Display     string
	ResultsID   string
	Results     template.HTML
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Movie Finder</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.movie-card { border: 1px solid #ccc; border-radius: 6px; padding: 1em; margin-bottom: 1em; }
.movie-poster { float: left; max-width: 140px; margin-right: 1em; }
.clearfix::after { content: ""; display: table; clear: both; }
</style>
</head>
<body>
<h1>Movie Finder</h1>
<form method="get" action="{{.Action}}">
<input type="text" id="{{.TitleID}}" name="title" value="{{.Title}}" placeholder="Enter a movie title">
<button type="submit">Search</button>
</form>
<div id="{{.IndicatorID}}" style="display: {{.Display}}">Loading...</div>
<div id="{{.ResultsID}}">
{{.Results}}
</div>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

// WriteTo renders the page as a full HTML document. The indicator element
// carries display: block or display: none according to Loading.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	p.mu.Lock()
	data := pageData{
		Action:      p.Action,
		TitleID:     TitleInputID,
		Title:       p.title,
		IndicatorID: IndicatorID,
		Display:     "none",
		ResultsID:   ResultsID,
	}
	if p.loading {
		data.Display = "block"
	}
	p.mu.Unlock()
	data.Results = p.results.HTML()

	cw := &countingWriter{w: w}
	if err := page.Execute(cw, data); err != nil {
		return cw.n, fmt.Errorf("rendering page: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
