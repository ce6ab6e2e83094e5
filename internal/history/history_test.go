// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/moviefinder/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(types.HistoryConfig{Enabled: true, Path: filepath.Join(dir, "data", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

var base = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store) {
	t.Helper()
	entries := []types.HistoryEntry{
		{Title: "The Matrix", RequestURL: "http://x/search?title=The%20Matrix", Status: types.StatusOK, Count: 10, SearchedAt: base},
		{Title: "Dune", RequestURL: "http://x/search?title=Dune", Status: types.StatusFailed, Error: "search failed: boom", SearchedAt: base.Add(time.Minute)},
		{Title: "Matrix Reloaded", RequestURL: "http://x/search?title=Matrix%20Reloaded", Status: types.StatusStale, SearchedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, s.Record(context.Background(), e))
	}
}

// --- tests ---

func TestOpenCreatesDatabase(t *testing.T) {
	s, dir := testStore(t)
	_, err := os.Stat(filepath.Join(dir, "data", "history.db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "history.db"), s.Path())

	var n int
	require.NoError(t, s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='searches'`,
	).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	s1, err := Open(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, s1.Record(context.Background(), types.HistoryEntry{Title: "x", Status: types.StatusOK}))
	require.NoError(t, s1.Close())

	s2, err := Open(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	defer s2.Close()

	entries, err := s2.Recent(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecordFillsIDAndTime(t *testing.T) {
	s, _ := testStore(t)
	before := time.Now().Add(-time.Second)
	require.NoError(t, s.Record(context.Background(), types.HistoryEntry{Title: "Alien", Status: types.StatusOK, Count: 3}))

	entries, err := s.Recent(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].ID, 36)
	assert.True(t, entries[0].SearchedAt.After(before))
	assert.Equal(t, 3, entries[0].Count)
	assert.Empty(t, entries[0].Error)
}

func TestRecordDuplicateIDFails(t *testing.T) {
	s, _ := testStore(t)
	e := types.HistoryEntry{ID: "fixed", Title: "x", Status: types.StatusOK}
	require.NoError(t, s.Record(context.Background(), e))
	assert.Error(t, s.Record(context.Background(), e))
}

func TestRecentNewestFirst(t *testing.T) {
	s, _ := testStore(t)
	seed(t, s)

	entries, err := s.Recent(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Matrix Reloaded", entries[0].Title)
	assert.Equal(t, "Dune", entries[1].Title)
	assert.Equal(t, "The Matrix", entries[2].Title)
	assert.True(t, base.Equal(entries[2].SearchedAt))
	assert.Equal(t, "search failed: boom", entries[1].Error)
}

func TestRecentSubSecondOrdering(t *testing.T) {
	s, _ := testStore(t)
	t0 := base
	require.NoError(t, s.Record(context.Background(), types.HistoryEntry{Title: "a", Status: types.StatusOK, SearchedAt: t0.Add(100 * time.Millisecond)}))
	require.NoError(t, s.Record(context.Background(), types.HistoryEntry{Title: "b", Status: types.StatusOK, SearchedAt: t0.Add(120 * time.Millisecond)}))

	entries, err := s.Recent(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Title)
}

func TestRecentFilters(t *testing.T) {
	s, _ := testStore(t)
	seed(t, s)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"title substring", QueryOptions{Title: "matrix"}, []string{"Matrix Reloaded", "The Matrix"}},
		{"status", QueryOptions{Status: types.StatusFailed}, []string{"Dune"}},
		{"title and status", QueryOptions{Title: "matrix", Status: types.StatusOK}, []string{"The Matrix"}},
		{"limit", QueryOptions{Limit: 1}, []string{"Matrix Reloaded"}},
		{"like wildcard is literal", QueryOptions{Title: "%"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.Recent(context.Background(), tt.opts)
			require.NoError(t, err)
			var titles []string
			for _, e := range entries {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestExportYAML(t *testing.T) {
	s, dir := testStore(t)
	seed(t, s)

	path := filepath.Join(dir, "out", "history.yaml")
	require.NoError(t, s.ExportYAML(context.Background(), path, QueryOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []types.HistoryEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, types.StatusStale, entries[0].Status)
	assert.Equal(t, "http://x/search?title=The%20Matrix", entries[2].RequestURL)
}

func TestExportJSONFiltered(t *testing.T) {
	s, dir := testStore(t)
	seed(t, s)

	path := filepath.Join(dir, "history.json")
	require.NoError(t, s.ExportJSON(context.Background(), path, QueryOptions{Status: types.StatusOK}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []types.HistoryEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "The Matrix", entries[0].Title)
	assert.Equal(t, 10, entries[0].Count)
}

func TestExportEmpty(t *testing.T) {
	s, dir := testStore(t)
	path := filepath.Join(dir, "empty.json")
	require.NoError(t, s.ExportJSON(context.Background(), path, QueryOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
