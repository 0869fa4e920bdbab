package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/scopeviz/scopetree/pkg/errors"
	"github.com/scopeviz/scopetree/pkg/graphio"
	"github.com/scopeviz/scopetree/pkg/layout"
	"github.com/scopeviz/scopetree/pkg/pipeline"
	"github.com/scopeviz/scopetree/pkg/store"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

// putSnapshotResponse is the JSON body returned by handlePutSnapshot.
type putSnapshotResponse struct {
	ID        string    `json:"id"`
	NodeCount int       `json:"node_count"`
	CreatedAt time.Time `json:"created_at"`
}

// layoutResponse wraps a computed layout with cache metadata.
type layoutResponse struct {
	SnapshotID string         `json:"snapshot_id"`
	GraphHash  string         `json:"graph_hash"`
	Cached     bool           `json:"cached"`
	Layout     graphio.Layout `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutSnapshot stores a snapshot posted as a graphio.Graph document.
// The graph is validated before storage so layout requests can only fail on
// limits, never on dangling references.
func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	var wire graphio.Graph
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "decode snapshot: %v", err))
		return
	}
	if _, err := graphio.ToObject(wire); err != nil {
		writeError(w, http.StatusUnprocessableEntity, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "invalid snapshot"))
		return
	}

	snap := store.Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		NodeCount: len(wire.Nodes),
		Graph:     wire,
	}
	if err := s.store.Put(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store snapshot"))
		return
	}

	writeJSON(w, http.StatusCreated, putSnapshotResponse{
		ID:        snap.ID,
		NodeCount: snap.NodeCount,
		CreatedAt: snap.CreatedAt,
	})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeInternal, err, "list snapshots"))
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", id))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeInternal, err, "delete snapshot"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLayout computes (or fetches from cache) the layout of a stored
// snapshot. GET accepts direction and refresh query parameters; POST
// additionally accepts full pipeline options in the body.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var opts pipeline.Options
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "decode options: %v", err))
			return
		}
	}
	if dir := r.URL.Query().Get("direction"); dir != "" {
		opts.Direction = dir
	}
	if r.URL.Query().Get("refresh") == "true" {
		opts.Refresh = true
	}
	opts.Logger = s.logger

	g, err := graphio.ToObject(snap.Graph)
	if err != nil {
		// Stored snapshots are validated on write; this is corruption.
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeInternal, err, "decode stored snapshot"))
		return
	}

	result, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, layoutStatus(err), layoutError(err))
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		SnapshotID: snap.ID,
		GraphHash:  result.GraphHash,
		Cached:     result.CacheInfo.LayoutHit,
		Layout:     result.Layout,
	})
}

// lookup fetches the snapshot named in the URL, writing the error response
// itself when the snapshot is missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (store.Snapshot, bool) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", id))
		return store.Snapshot{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load snapshot"))
		return store.Snapshot{}, false
	}
	return snap, true
}

// layoutStatus maps pipeline failures to HTTP status codes. Contract
// violations and limits are client errors; everything else is internal.
func layoutStatus(err error) int {
	switch {
	case errors.Is(err, layout.ErrInvalidDirection),
		errors.Is(err, layout.ErrUnknownNode):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrDepthLimit),
		errors.Is(err, layout.ErrNodeLimit):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// layoutError attaches the matching error code for the API response.
func layoutError(err error) *apperrors.Error {
	switch {
	case errors.Is(err, layout.ErrInvalidDirection):
		return apperrors.Wrap(apperrors.ErrCodeInvalidDirection, err, "layout failed")
	case errors.Is(err, layout.ErrUnknownNode):
		return apperrors.Wrap(apperrors.ErrCodeInvalidExpansion, err, "layout failed")
	case errors.Is(err, layout.ErrDanglingReference):
		return apperrors.Wrap(apperrors.ErrCodeDanglingRef, err, "layout failed")
	case errors.Is(err, layout.ErrDepthLimit), errors.Is(err, layout.ErrNodeLimit):
		return apperrors.Wrap(apperrors.ErrCodeLimitExceeded, err, "layout failed")
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "layout failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *apperrors.Error) {
	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: err.Code})
}
