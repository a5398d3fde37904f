package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/siherrmann/speechgraph/core/graph"
	"github.com/siherrmann/speechgraph/model"
)

const maxSegmentBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePushSegment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSegmentBytes)).Decode(&req); err != nil {
		s.log.Warn("Invalid segment body", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	segment := model.NewSegment(req.Text, req.IsFinal)
	if req.ID != nil && *req.ID != uuid.Nil {
		segment.ID = *req.ID
	}

	data, extracted := s.feed.Push(segment)
	writeJSON(w, http.StatusOK, SegmentResponse{
		SegmentID: segment.ID,
		Extracted: extracted,
		Graph:     data,
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.feed.Segments())
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.feed.Graph())
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.feed.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hops := 1
	if raw := r.URL.Query().Get("hops"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "hops must be a non-negative integer")
			return
		}
		hops = n
	}

	var types []model.RelationType
	for _, t := range r.URL.Query()["type"] {
		types = append(types, model.RelationType(t))
	}
	bidirectional := r.URL.Query().Get("direction") != "outgoing"

	results, err := graph.BFS(s.feed.Graph(), id, hops, types, bidirectional)
	if errors.Is(err, graph.ErrNodeNotFound) {
		writeError(w, http.StatusNotFound, "entity not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
