package server

import (
	"net/http"

	"repolens/internal/gateway/handler"
	"repolens/internal/gateway/middleware"
)

func NewMux(svc *handler.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/analyze", svc.HandleAnalyze)
	mux.HandleFunc("/api/chat", svc.HandleChat)
	mux.HandleFunc("/api/chat/ws", svc.HandleChatWS)
	mux.HandleFunc("/api/search", svc.HandleSearch)
	mux.HandleFunc("/healthz", svc.HandleHealth)

	return middleware.CORS(mux)
}
