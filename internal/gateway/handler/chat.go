package handler

import (
	"net/http"
	"strings"
)

type chatRequest struct {
	URL            string `json:"url"`
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type chatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversationId"`
}

// HandleChat answers one question about an already-analyzed repository.
// Repositories must be analyzed explicitly first; chatting about an unknown
// one fails with not_yet_analyzed rather than triggering a hidden walk.
func (s *Service) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	snap, err := s.ingest.Snapshot(req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		conversationID = snap.Info.FullName
	}

	reply, err := s.chat.Ask(r.Context(), snap, conversationID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, ConversationID: conversationID})
}
