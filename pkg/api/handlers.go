package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/muninn/pkg/archive"
)

// defaultListLimit bounds unqualified fault listings.
const defaultListLimit = 50

// Server holds the API server state
type Server struct {
	archive *archive.Archive
	log     *slog.Logger
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(archive *archive.Archive, log *slog.Logger, metrics *Metrics) *Server {
	return &Server{
		archive: archive,
		log:     log,
		metrics: metrics,
	}
}

// handleHealth reports agent liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListFaults returns archived fault records, newest first. The limit
// query parameter caps the result; it defaults to 50.
func (s *Server) handleListFaults(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			sendError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := s.archive.List(limit)
	if err != nil {
		s.log.Error("failed to list fault records", "error", err)
		sendError(w, "Failed to list fault records", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []archive.Entry{}
	}
	sendSuccess(w, entries)
}

// handleGetFault returns a single archived fault record by id.
func (s *Server) handleGetFault(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "Fault id is required", http.StatusBadRequest)
		return
	}

	entry, err := s.archive.Get(id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			sendError(w, "Fault record not found", http.StatusNotFound)
			return
		}
		s.log.Error("failed to read fault record", "id", id, "error", err)
		sendError(w, "Failed to read fault record", http.StatusInternalServerError)
		return
	}
	sendSuccess(w, entry)
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// sendError sends an error JSON response
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}
