package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/boardwalk-eda/boardwalk/pkg/errors"
	"github.com/boardwalk-eda/boardwalk/pkg/observability"
	"github.com/boardwalk-eda/boardwalk/pkg/pipeline"
	"github.com/boardwalk-eda/boardwalk/pkg/store"
)

// placeRequest is the POST /api/place request body.
type placeRequest struct {
	Board      json.RawMessage `json:"board"`
	Iterations int             `json:"iterations,omitempty"`
	Dt         float64         `json:"dt,omitempty"`
	Snap       bool            `json:"snap,omitempty"`
	Formats    []string        `json:"formats,omitempty"`
	Detailed   bool            `json:"detailed,omitempty"`
	Refresh    bool            `json:"refresh,omitempty"`
}

// placeResponse is the POST /api/place response body.
// Artifacts are base64-encoded by the JSON marshaller except the placed
// board, which is embedded as raw JSON.
type placeResponse struct {
	RunID      string            `json:"run_id"`
	BoardName  string            `json:"board_name"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
	WireLength float64           `json:"wire_length"`
	Energy     float64           `json:"energy"`
	Board      json.RawMessage   `json:"board"`
	Artifacts  map[string][]byte `json:"artifacts,omitempty"`
	Cached     bool              `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body"))
		return
	}
	if len(req.Board) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "board is required"))
		return
	}
	if err := pipeline.ValidateFormats(req.Formats); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "validating formats"))
		return
	}
	if req.Iterations < 0 || req.Dt < 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "iterations and dt cannot be negative"))
		return
	}

	opts := pipeline.Options{
		BoardJSON:  req.Board,
		Iterations: req.Iterations,
		Dt:         req.Dt,
		Snap:       req.Snap,
		Formats:    req.Formats,
		Detailed:   req.Detailed,
		Refresh:    req.Refresh,
		Logger:     s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	placed := result.Artifacts[pipeline.FormatJSON]

	run := &store.Run{
		ID:         result.RunID,
		BoardName:  result.Board.Name,
		BoardHash:  result.BoardHash,
		CreatedAt:  time.Now().UTC(),
		Iterations: result.Iterations,
		Converged:  result.Converged,
		WireLength: result.WireLength,
		Energy:     result.Energy,
		Board:      placed,
	}
	if err := s.store.SaveRun(r.Context(), run); err != nil {
		// The placement succeeded; log persistence failures instead of
		// failing the request.
		s.logger.Error("saving run", "run_id", run.ID, "err", err)
	}

	// The placed board travels in its own field; drop the duplicate.
	extra := make(map[string][]byte, len(result.Artifacts))
	for format, data := range result.Artifacts {
		if format != pipeline.FormatJSON {
			extra[format] = data
		}
	}

	s.writeJSON(w, http.StatusOK, placeResponse{
		RunID:      result.RunID,
		BoardName:  result.Board.Name,
		Iterations: result.Iterations,
		Converged:  result.Converged,
		WireLength: result.WireLength,
		Energy:     result.Energy,
		Board:      placed,
		Artifacts:  extra,
		Cached:     result.CacheInfo.PlaceHit,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Listing is a summary view; strip the board payloads.
	for _, run := range runs {
		run.Board = nil
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeRunNotFound, errors.ErrCodeNotFound,
		errors.ErrCodeComponentNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidBoard, errors.ErrCodeInvalidOutline,
		errors.ErrCodeInvalidComponent, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath, errors.ErrCodeDuplicateComponent:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
