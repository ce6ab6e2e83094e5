// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/moviefinder/internal/render"
	"github.com/pdiddy/moviefinder/pkg/types"
)

func renderPage(t *testing.T, p *Page) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestPageElements(t *testing.T) {
	p := NewPage("")
	p.SetTitle("The Matrix")

	doc := renderPage(t, p)

	input := doc.Find("#" + TitleInputID)
	require.Equal(t, 1, input.Length())
	val, _ := input.Attr("value")
	assert.Equal(t, "The Matrix", val)
	name, _ := input.Attr("name")
	assert.Equal(t, "title", name)

	action, _ := doc.Find("form").Attr("action")
	assert.Equal(t, "/", action)

	style, _ := doc.Find("#" + IndicatorID).Attr("style")
	assert.Equal(t, "display: none", style)

	assert.Equal(t, 1, doc.Find("#"+ResultsID).Length())
	assert.Equal(t, 0, doc.Find("#"+ResultsID+" .movie-card").Length())
}

func TestPageIndicatorToggle(t *testing.T) {
	p := NewPage("/")
	assert.False(t, p.Loading())

	p.Show()
	assert.True(t, p.Loading())
	style, _ := renderPage(t, p).Find("#" + IndicatorID).Attr("style")
	assert.Equal(t, "display: block", style)

	p.Hide()
	assert.False(t, p.Loading())
	style, _ = renderPage(t, p).Find("#" + IndicatorID).Attr("style")
	assert.Equal(t, "display: none", style)
}

func TestPageAsRenderContainer(t *testing.T) {
	p := NewPage("/")
	r := render.NewRenderer(p)

	require.NoError(t, r.Render([]types.Movie{{Title: "A"}, {Title: "B"}}))
	assert.Len(t, p.Results(), 2)

	doc := renderPage(t, p)
	cards := doc.Find("#" + ResultsID + " div.movie-card")
	require.Equal(t, 2, cards.Length())
	assert.Equal(t, "A", cards.Eq(0).Find("h2 a").Text())
	assert.Equal(t, "B", cards.Eq(1).Find("h2 a").Text())

	require.NoError(t, r.Render(nil))
	assert.Empty(t, p.Results())
}

func TestPageEscapesTitleInput(t *testing.T) {
	p := NewPage("/")
	p.SetTitle(`"><script>x</script>`)

	doc := renderPage(t, p)
	assert.Equal(t, 0, doc.Find("script").Length())
	val, _ := doc.Find("#" + TitleInputID).Attr("value")
	assert.Equal(t, `"><script>x</script>`, val)
}

func TestTerminalIndicator(t *testing.T) {
	var buf bytes.Buffer
	ind := NewTerminalIndicator(&buf)

	ind.Hide()
	assert.Empty(t, buf.String())

	ind.Show()
	ind.Show()
	assert.True(t, ind.Visible())
	ind.Hide()
	assert.False(t, ind.Visible())

	assert.Equal(t, "Searching...\nDone.\n", buf.String())
}
