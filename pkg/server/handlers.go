package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/keytrace/swipepath/pkg/buildinfo"
	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/pathio"
	"github.com/keytrace/swipepath/pkg/pipeline"
	"github.com/keytrace/swipepath/pkg/wordpath"
)

// =============================================================================
// Wire Types
// =============================================================================

// PathsRequest is the body of POST /v1/paths. At most one of Density and
// Count may be set; neither means the default density.
type PathsRequest struct {
	Words   []string `json:"words"`
	Density float64  `json:"density,omitempty"`
	Count   int      `json:"count,omitempty"`
}

// PathsResponse is the body returned by POST /v1/paths.
type PathsResponse struct {
	RequestID string        `json:"request_id"`
	Layout    string        `json:"layout"`
	Policy    string        `json:"policy"`
	Paths     []pathio.Path `json:"paths"`
}

// EndpointsResponse is the body returned by GET /v1/endpoints.
type EndpointsResponse struct {
	Word       string      `json:"word"`
	Normalized string      `json:"normalized"`
	First      *geom.Point `json:"first"`
	Last       *geom.Point `json:"last"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Layout string         `json:"layout"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error *pathio.Error `json:"error"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Layout: s.layout.Name(),
		Build:  buildinfo.Get(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.layout)
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req PathsRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := pipeline.Options{
		Words:   req.Words,
		Density: req.Density,
		Count:   req.Count,
		Workers: s.workers,
		Logger:  s.logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	policy := opts.Policy()
	paths, err := s.runner.Generate(r.Context(), s.layout, opts.Words, policy, opts.Workers)
	if err != nil {
		// Only cancellation reaches here; the client is gone.
		s.logger.Debug("generation aborted", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, PathsResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Layout:    s.layout.Name(),
		Policy:    policy.String(),
		Paths:     paths,
	})
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("word") {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "missing query parameter: word"))
		return
	}
	word := q.Get("word")
	if err := errors.ValidateWord(word); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	wp := wordpath.New(s.layout, word)
	first, last := wp.FirstLast()
	writeJSON(w, http.StatusOK, EndpointsResponse{
		Word:       word,
		Normalized: string(wp.Runes()),
		First:      first,
		Last:       last,
	})
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: pathio.NewError(err)})
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func errMethod(method, path string) error {
	return errors.New(errors.ErrCodeUnsupported, "method %s not allowed on %s", method, path)
}
