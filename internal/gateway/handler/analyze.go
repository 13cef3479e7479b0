package handler

import (
	"net/http"

	"repolens/internal/ingest"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	Repo           ingest.RepoInfo `json:"repo"`
	TotalFiles     int             `json:"totalFiles"`
	CodeFiles      []string        `json:"codeFiles"`
	ImportantFiles []string        `json:"importantFiles"`
}

// HandleAnalyze ingests the repository named in the body (or returns the
// cached snapshot) and responds with a summary of what was captured.
func (s *Service) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap, err := s.ingest.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := analyzeResponse{
		Repo:           snap.Info,
		TotalFiles:     snap.TotalFiles,
		CodeFiles:      make([]string, 0, len(snap.CodeFiles)),
		ImportantFiles: make([]string, 0, len(snap.ImportantFiles)),
	}
	for _, f := range snap.CodeFiles {
		resp.CodeFiles = append(resp.CodeFiles, f.Path)
	}
	for _, f := range snap.ImportantFiles {
		resp.ImportantFiles = append(resp.ImportantFiles, f.Path)
	}
	writeJSON(w, http.StatusOK, resp)
}
