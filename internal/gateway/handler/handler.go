package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"repolens/internal/chat"
	"repolens/internal/ingest"
)

// Service carries the HTTP handlers. The endpoints are thin wrappers: all
// ingestion semantics live in the ingest package, chat in the chat package.
type Service struct {
	ingest *ingest.Service
	chat   *chat.Service
}

func NewService(ingestSvc *ingest.Service, chatSvc *chat.Service) *Service {
	return &Service{ingest: ingestSvc, chat: chatSvc}
}

func (s *Service) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: encode response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := ingest.KindOf(err)
	writeJSON(w, statusForKind(kind), errorResponse{Error: err.Error(), Kind: string(kind)})
}

func statusForKind(kind ingest.ErrorKind) int {
	switch kind {
	case ingest.KindInvalidIdentity:
		return http.StatusBadRequest
	case ingest.KindRepositoryNotFound:
		return http.StatusNotFound
	case ingest.KindNotYetAnalyzed:
		return http.StatusConflict
	case ingest.KindSizeLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case ingest.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a small JSON body into dst, rejecting anything else.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}
