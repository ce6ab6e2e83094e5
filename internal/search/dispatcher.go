// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search dispatches movie title queries to the search endpoint and
// hands the returned records to a renderer.
//
// A Dispatcher shows a loading indicator for the duration of each request
// and numbers requests with a monotonically increasing token. Only the
// latest issued request may hide the indicator or replace the rendered
// results; the outcome of a superseded request is discarded.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/moviefinder/internal/httputil"
	"github.com/pdiddy/moviefinder/pkg/types"
)

var (
	// ErrSearchFailed wraps every failure of a search: transport errors,
	// non-2xx responses, bodies that are not a JSON array, and render
	// errors are not distinguished further.
	ErrSearchFailed = errors.New("search failed")

	// ErrSuperseded is returned when a newer search was issued before this
	// one settled. Its outcome was discarded.
	ErrSuperseded = errors.New("search superseded by a newer request")
)

// Indicator is the loading indicator shown while a search is in flight.
type Indicator interface {
	Show()
	Hide()
}

// Renderer displays a completed result set.
type Renderer interface {
	Render(movies []types.Movie) error
}

// TitleSource supplies the title the user entered.
type TitleSource interface {
	Title() string
}

// Recorder persists the outcome of settled searches.
type Recorder interface {
	Record(ctx context.Context, entry types.HistoryEntry) error
}

// Dispatcher issues searches. The zero value is not usable; build one with
// NewDispatcher or set Endpoint and Renderer directly.
type Dispatcher struct {
	Client    *http.Client
	Endpoint  string
	UserAgent string

	Indicator Indicator
	Renderer  Renderer
	// History is optional.
	History Recorder
	Logger  logrus.FieldLogger

	mu     sync.Mutex
	latest uint64
}

// NewDispatcher returns a Dispatcher for cfg. A nil logger falls back to
// the logrus standard logger.
func NewDispatcher(cfg types.SearchConfig, ind Indicator, r Renderer, log logrus.FieldLogger) *Dispatcher {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = types.DefaultEndpoint
	}
	return &Dispatcher{
		Client:    httputil.NewClient(cfg.HTTPConfig),
		Endpoint:  endpoint,
		UserAgent: cfg.UserAgent,
		Indicator: ind,
		Renderer:  r,
		Logger:    log,
	}
}

// SearchFrom reads the title from src and searches for it.
func (d *Dispatcher) SearchFrom(ctx context.Context, src TitleSource) ([]types.Movie, error) {
	return d.Search(ctx, src.Title())
}

// Search queries the endpoint for title and renders the result.
//
// The indicator is shown before the request is sent. When the request
// settles and it is still the latest one, the indicator is hidden and
// either the records are rendered (success) or the error is logged and
// the results are left unchanged (failure, wrapped in ErrSearchFailed).
// When a newer search was issued in the meantime, nothing is touched and
// ErrSuperseded is returned.
func (d *Dispatcher) Search(ctx context.Context, title string) ([]types.Movie, error) {
	log := d.logger().WithField("title", title)

	reqURL, err := RequestURL(d.Endpoint, title)
	if err != nil {
		log.WithError(err).Error("Invalid search endpoint")
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	token := d.begin()
	log = log.WithFields(logrus.Fields{"url": reqURL, "token": token})
	log.Debug("Search dispatched")

	start := time.Now()
	movies, fetchErr := d.fetch(ctx, reqURL)

	entry := types.HistoryEntry{
		Title:      title,
		RequestURL: reqURL,
		Count:      len(movies),
		SearchedAt: start.UTC(),
	}

	err = d.settle(token, movies, fetchErr, log.WithField("elapsed", time.Since(start)))
	switch {
	case err == nil:
		entry.Status = types.StatusOK
	case errors.Is(err, ErrSuperseded):
		entry.Status = types.StatusStale
	default:
		entry.Status = types.StatusFailed
		entry.Count = 0
		entry.Error = err.Error()
	}
	d.record(ctx, entry, log)

	if err != nil {
		return nil, err
	}
	return movies, nil
}

// begin issues a new token and shows the indicator.
func (d *Dispatcher) begin() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest++
	if d.Indicator != nil {
		d.Indicator.Show()
	}
	return d.latest
}

// settle applies the outcome of the request identified by token.
func (d *Dispatcher) settle(token uint64, movies []types.Movie, fetchErr error, log logrus.FieldLogger) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token != d.latest {
		log.WithField("latest", d.latest).Debug("Discarding response to superseded search")
		return ErrSuperseded
	}

	if d.Indicator != nil {
		d.Indicator.Hide()
	}

	if fetchErr != nil {
		log.WithError(fetchErr).Error("Search failed")
		return fmt.Errorf("%w: %w", ErrSearchFailed, fetchErr)
	}

	if d.Renderer != nil {
		if err := d.Renderer.Render(movies); err != nil {
			log.WithError(err).Error("Rendering results failed")
			return fmt.Errorf("%w: %w", ErrSearchFailed, err)
		}
	}
	log.WithField("count", len(movies)).Info("Search completed")
	return nil
}

func (d *Dispatcher) fetch(ctx context.Context, reqURL string) ([]types.Movie, error) {
	body, err := httputil.Fetch(ctx, d.Client, reqURL, d.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	movies, err := DecodeMovies(body)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return movies, nil
}

func (d *Dispatcher) record(ctx context.Context, entry types.HistoryEntry, log logrus.FieldLogger) {
	if d.History == nil {
		return
	}
	// The search may have settled because ctx was cancelled; the entry is
	// still written.
	if err := d.History.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.WithError(err).Warn("Recording search history failed")
	}
}

func (d *Dispatcher) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}
