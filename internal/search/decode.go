// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/moviefinder/pkg/types"
)

// DecodeMovies parses a search response body. The body must be a JSON
// array; each element's fields are read by name and flattened to text, so
// a numeric total_rating and a null poster_url decode without error.
// Elements that are not objects decode to an empty Movie.
func DecodeMovies(body []byte) ([]types.Movie, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response body is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("response body is a JSON %s, want an array", kind(root))
	}

	items := root.Array()
	movies := make([]types.Movie, 0, len(items))
	for _, item := range items {
		movies = append(movies, types.Movie{
			Title:           item.Get("title").String(),
			MovieLink:       item.Get("movie_link").String(),
			PosterURL:       item.Get("poster_url").String(),
			Director:        item.Get("director").String(),
			Story:           item.Get("story").String(),
			TotalRating:     item.Get("total_rating").String(),
			AdditionalInfos: item.Get("additional_infos").String(),
		})
	}
	return movies, nil
}

func kind(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.Type == gjson.True || r.Type == gjson.False:
		return "boolean"
	default:
		return strings.ToLower(r.Type.String())
	}
}
