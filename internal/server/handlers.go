package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layouts.
type LayoutRequest struct {
	Graph   graph.Graph      `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is returned by POST /v1/layouts.
// Binary artifacts (png) are base64 encoded; text formats are returned as is.
type LayoutResponse struct {
	ID        string            `json:"id"`
	GraphHash string            `json:"graph_hash"`
	Layout    graph.Layout      `json:"layout"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
	ElapsedMS int64             `json:"elapsed_ms"`
}

// RunSummary is one entry of GET /v1/layouts.
type RunSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Cost      int       `json:"cost"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	// Absent annealing keys keep their defaults; explicit zeros survive.
	req := LayoutRequest{Options: pipeline.Options{Anneal: anneal.DefaultParams()}}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if n := len(req.Graph.Nodes); n > s.cfg.MaxNodes {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "graph has %d nodes, limit is %d", n, s.cfg.MaxNodes))
		return
	}
	if err := s.checkGrid(req.Options); err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	res, err := s.runner.Execute(ctx, req.Graph, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, LayoutResponse{
		ID:        res.RunID,
		GraphHash: res.GraphHash,
		Layout:    res.Layout,
		Artifacts: encodeArtifacts(res.Artifacts),
		Cached:    res.CacheInfo.LayoutHit,
		ElapsedMS: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]RunSummary, len(runs))
	for i, run := range runs {
		out[i] = RunSummary{
			ID:        run.ID,
			CreatedAt: run.CreatedAt,
			Nodes:     len(run.Graph.Nodes),
			Edges:     len(run.Graph.Edges),
			Width:     run.Layout.Width,
			Height:    run.Layout.Height,
			Cost:      run.Layout.Cost,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": out})
}

// checkGrid enforces MaxCells on the grid the options will resolve to.
// A missing dimension copies the other one; when both are missing the
// default grid is sized from the node count, which MaxNodes already bounds.
func (s *Server) checkGrid(opts pipeline.Options) error {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = height
	}
	if height == 0 {
		height = width
	}
	limit := s.cfg.MaxCells
	if width > limit || height > limit || width*height > limit {
		return errs.New(errs.ErrCodeInvalidInput, "grid %dx%d exceeds the limit of %d cells", width, height, limit)
	}
	return nil
}

func encodeArtifacts(artifacts map[string][]byte) map[string]string {
	if len(artifacts) == 0 {
		return nil
	}
	out := make(map[string]string, len(artifacts))
	for format, data := range artifacts {
		if format == pipeline.FormatPNG || !utf8.Valid(data) {
			out[format] = base64.StdEncoding.EncodeToString(data)
			continue
		}
		out[format] = string(data)
	}
	return out
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidLayout, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeInfeasible, errs.ErrCodeNoVacancy:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: string(code), Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
