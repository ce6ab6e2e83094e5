// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/moviefinder/pkg/types"
)

func TestFetch_Success(t *testing.T) {
	var calls int32
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), ts.URL, "moviefinder/test")
	require.NoError(t, err)

	assert.Equal(t, "[]", string(body))
	assert.Equal(t, "moviefinder/test", gotUA)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_NonSuccessStatusIsNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL, "")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_BadRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "No title provided"}`))
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), ts.URL, "")
	assert.Nil(t, body)
	assert.ErrorContains(t, err, "400")
}

func TestFetch_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Fetch(context.Background(), http.DefaultClient, url, "")
	assert.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Fetch(ctx, ts.Client(), ts.URL, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_Timeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), NewClient(types.HTTPConfig{}).Timeout)
	assert.Equal(t, 3*time.Second, NewClient(types.HTTPConfig{Timeout: 3 * time.Second}).Timeout)
}
