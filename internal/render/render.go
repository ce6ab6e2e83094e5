// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns movie records into HTML cards and writes them to a
// results container.
//
// Every field is escaped by html/template, so markup inside a title or
// story is displayed literally and unsafe link schemes are neutralized.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/pdiddy/moviefinder/pkg/types"
)

// Container receives rendered cards. Implementations own the element that
// displays search results.
type Container interface {
	// Clear removes every previously appended card.
	Clear()
	// Append adds one card after the existing ones.
	Append(card template.HTML)
}

const cardTemplate = `<div class="movie-card clearfix">
    <h2><a href="{{.MovieLink}}" target="_blank">{{.Title}}</a></h2>
    <img src="{{.PosterURL}}" alt="{{.Title}}" class="movie-poster">
    <p>Director: {{.Director}}</p>
    <p>Story: {{.Story}}</p>
    <p>Rating: {{.TotalRating}}</p>
    <p>Additional Info: {{.AdditionalInfos}}</p>
</div>`

var card = template.Must(template.New("card").Parse(cardTemplate))

// Card renders a single movie record.
func Card(m types.Movie) (template.HTML, error) {
	var buf bytes.Buffer
	if err := card.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("rendering card for %q: %w", m.Title, err)
	}
	return template.HTML(buf.String()), nil
}

// Renderer replaces the contents of a container with one card per movie.
type Renderer struct {
	Container Container
}

// NewRenderer returns a Renderer writing into c.
func NewRenderer(c Container) *Renderer {
	return &Renderer{Container: c}
}

// Render clears the container and appends one card per movie in input
// order. All cards are built before the container is touched, so a
// rendering error leaves the previous results in place. An empty slice
// leaves the container empty.
func (r *Renderer) Render(movies []types.Movie) error {
	cards := make([]template.HTML, 0, len(movies))
	for _, m := range movies {
		c, err := Card(m)
		if err != nil {
			return err
		}
		cards = append(cards, c)
	}

	r.Container.Clear()
	for _, c := range cards {
		r.Container.Append(c)
	}
	return nil
}

// Buffer is an in-memory Container. It is safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	cards []template.HTML
}

// Clear drops all cards.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = nil
}

// Append adds a card.
func (b *Buffer) Append(card template.HTML) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = append(b.cards, card)
}

// Cards returns a copy of the current cards.
func (b *Buffer) Cards() []template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]template.HTML(nil), b.cards...)
}

// Len returns the number of cards.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cards)
}

// HTML returns the cards joined in order.
func (b *Buffer) HTML() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	parts := make([]string, len(b.cards))
	for i, c := range b.cards {
		parts[i] = string(c)
	}
	return template.HTML(strings.Join(parts, "\n"))
}
