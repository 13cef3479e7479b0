package handler

import (
	"net/http"
	"strings"

	"repolens/internal/search"
)

type searchRequest struct {
	URL   string `json:"url"`
	Query string `json:"query"`
	Kind  string `json:"kind,omitempty"` // empty for text, else function/class/import/export
}

type searchResponse struct {
	search.Result
	Kind string `json:"kind,omitempty"`
}

// HandleSearch runs an ad-hoc scan over the cached snapshot's full file
// contents. Like chat, it requires the repository to be analyzed first.
func (s *Service) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind != "" && !search.ValidPatternKind(kind) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown search kind: " + req.Kind})
		return
	}

	snap, err := s.ingest.Snapshot(req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	var result search.Result
	if kind == "" {
		result = search.Search(snap.AllFiles, req.Query)
	} else {
		result = search.SearchPattern(snap.AllFiles, search.PatternKind(kind), req.Query)
	}
	writeJSON(w, http.StatusOK, searchResponse{Result: result, Kind: kind})
}
