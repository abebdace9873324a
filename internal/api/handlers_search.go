package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/sherlock/internal/admission"
)

// handleAdmissionSearch runs a line-context search over the admission report.
func (s *Server) handleAdmissionSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	resp, err := s.searcher.Search(r.Context(), query)
	var short *admission.QueryTooShortError
	switch {
	case errors.As(err, &short):
		jsonError(w, fmt.Sprintf("Search query must be at least %d characters", short.Min), http.StatusBadRequest)
		return
	case errors.Is(err, admission.ErrDataFileNotFound):
		s.log.Warn("admission report missing", "data_file", s.searcher.DataFile())
		jsonError(w, "Data file not found", http.StatusNotFound)
		return
	case err != nil:
		s.log.Error("search error", "query", query, "error", err)
		jsonError(w, "An error occurred while searching", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleSearchStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "search stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data_file": s.searcher.DataFile(),
		"window":    s.cfg.StatsWindow.String(),
		"stats":     s.stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
