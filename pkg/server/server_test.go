package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/keyboard"
	"github.com/keytrace/swipepath/pkg/observability"
	"github.com/keytrace/swipepath/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s, err := New(context.Background(), pipeline.NewRunner(nil, nil, logger), Config{})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func postPaths(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/paths", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	body := decode[healthResponse](t, resp)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, keyboard.DefaultName, body.Layout)
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/layout")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	l := decode[keyboard.Layout](t, resp)
	assert.Equal(t, keyboard.Default().Len(), l.Len())
	h, ok := l.Lookup("h")
	assert.True(t, ok)
	assert.Equal(t, geom.Pt(0.6, 0.15), h)
}

func TestPaths(t *testing.T) {
	ts := newTestServer(t)

	resp := postPaths(t, ts, `{"words": ["hello", "hÜo", ""], "density": 0.1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := resp.Header.Get(HeaderRequestID)

	body := decode[PathsResponse](t, resp)
	assert.Equal(t, id, body.RequestID)
	assert.Equal(t, "density=0.1", body.Policy)
	require.Len(t, body.Paths, 3)

	assert.Len(t, body.Paths[0].Points, 12)
	require.NotNil(t, body.Paths[1].Error)
	assert.Equal(t, string(errors.ErrCodeUnknownKey), body.Paths[1].Error.Code)
	require.NotNil(t, body.Paths[2].Error)
	assert.Equal(t, string(errors.ErrCodeEmptyWord), body.Paths[2].Error.Code)
}

func TestPathsCount(t *testing.T) {
	ts := newTestServer(t)
	resp := postPaths(t, ts, `{"words": ["spaceship", "top"], "count": 25}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PathsResponse](t, resp)
	for _, p := range body.Paths {
		assert.Len(t, p.Points, 25, p.Word)
	}
}

func TestPathsDefaultPolicy(t *testing.T) {
	ts := newTestServer(t)
	resp := postPaths(t, ts, `{"words": ["hello"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PathsResponse](t, resp)
	assert.Equal(t, "density=0.01", body.Policy)
	assert.Len(t, body.Paths[0].Points, 114)
}

func TestPathsBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"malformed", `{"words": [`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"words": ["a"], "spacing": 1}`, errors.ErrCodeInvalidInput},
		{"no words", `{"words": []}`, errors.ErrCodeInvalidInput},
		{"both policies", `{"words": ["a"], "density": 0.1, "count": 4}`, errors.ErrCodeInvalidPolicy},
		{"negative density", `{"words": ["a"], "density": -0.1}`, errors.ErrCodeInvalidPolicy},
		{"count above max points", `{"words": ["I"], "count": 4611686018427387904}`, errors.ErrCodeInvalidPolicy},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postPaths(t, ts, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[errorResponse](t, resp)
			require.NotNil(t, body.Error)
			assert.Equal(t, string(tt.code), body.Error.Code)
		})
	}
}

func TestPathsCountTooSmallIsPerWord(t *testing.T) {
	ts := newTestServer(t)
	resp := postPaths(t, ts, `{"words": ["hello", "I"], "count": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PathsResponse](t, resp)
	require.NotNil(t, body.Paths[0].Error)
	assert.Equal(t, string(errors.ErrCodeInvalidPolicy), body.Paths[0].Error.Code)
	assert.Len(t, body.Paths[1].Points, 2)
}

func TestPathsDensityTooFineIsPerWord(t *testing.T) {
	ts := newTestServer(t)
	resp := postPaths(t, ts, `{"words": ["hello", "I"], "density": 1e-300}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PathsResponse](t, resp)
	require.Len(t, body.Paths, 2)
	require.NotNil(t, body.Paths[0].Error)
	assert.Equal(t, string(errors.ErrCodeInvalidPolicy), body.Paths[0].Error.Code)
	assert.Empty(t, body.Paths[0].Points)
	assert.Len(t, body.Paths[1].Points, 1)
}

type panicOnWord string

func (w panicOnWord) OnPathStart(_ context.Context, word, _ string) {
	if word == string(w) {
		panic("hook failure")
	}
}

func (panicOnWord) OnPathComplete(context.Context, string, int, time.Duration, error) {}

func TestPathsPanicIsPerWord(t *testing.T) {
	observability.SetPathHooks(panicOnWord("boom"))
	defer observability.Reset()

	ts := newTestServer(t)
	resp := postPaths(t, ts, `{"words": ["boom", "I"], "count": 3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PathsResponse](t, resp)
	require.Len(t, body.Paths, 2)
	require.NotNil(t, body.Paths[0].Error)
	assert.Equal(t, string(errors.ErrCodeInternal), body.Paths[0].Error.Code)
	assert.Len(t, body.Paths[1].Points, 3)
}

func TestEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/endpoints?word=h%C3%9C%C3%9Co")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[EndpointsResponse](t, resp)
	assert.Equal(t, "hüo", body.Normalized)
	assert.Equal(t, &geom.Point{X: 0.6, Y: 0.15}, body.First)
	assert.Equal(t, &geom.Point{X: 0.85, Y: 0.05}, body.Last)

	resp, err = http.Get(ts.URL + "/v1/endpoints?word=")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	empty := decode[EndpointsResponse](t, resp)
	assert.Nil(t, empty.First)
	assert.Nil(t, empty.Last)

	resp, err = http.Get(ts.URL + "/v1/endpoints")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRequestIDReused(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderRequestID, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestNotFoundAndMethod(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v2/nothing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[errorResponse](t, resp)
	assert.Equal(t, string(errors.ErrCodeNotFound), body.Error.Code)

	resp, err = http.Post(ts.URL+"/healthz", "application/json", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp.Body.Close()
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s, err := New(context.Background(), pipeline.NewRunner(nil, nil, logger), Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}
