// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/moviefinder/pkg/types"
)

// FormatTable writes movies as a human-readable table to w.
func FormatTable(movies []types.Movie, w io.Writer) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-24s  %-6s  %s\n",
		"Rank", "Title", "Director", "Rating", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, m := range movies {
		fmt.Fprintf(w, "%-4d  %-40s  %-24s  %-6s  %s\n",
			i+1, truncate(m.Title, 40), truncate(m.Director, 24), truncate(m.TotalRating, 6), m.MovieLink)
	}

	fmt.Fprintf(w, "\n%d results\n", len(movies))
}

// FormatJSON writes movies as indented JSON to w. A nil slice is written
// as an empty array.
func FormatJSON(movies []types.Movie, w io.Writer) error {
	if movies == nil {
		movies = []types.Movie{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(movies)
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
