package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"repolens/internal/ingest"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type           string `json:"type"`
	Message        string `json:"message,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

type chatWSOutbound struct {
	Type           string `json:"type"`
	Reply          string `json:"reply,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	Code           string `json:"code,omitempty"`
	Message        string `json:"message,omitempty"`
}

// HandleChatWS is the streaming counterpart of HandleChat: one connection
// per repository, one reply pushed per inbound message. The repository must
// already be analyzed when the socket is opened.
func (s *Service) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	repo := strings.TrimSpace(r.URL.Query().Get("repo"))
	if repo == "" {
		http.Error(w, "repo is required", http.StatusBadRequest)
		return
	}
	snap, err := s.ingest.Snapshot(repo)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushChatWS(ctx, writeCh, chatWSOutbound{Type: "ready", ConversationID: snap.Info.FullName})

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		if strings.ToLower(strings.TrimSpace(in.Type)) != "message" {
			pushChatWS(ctx, writeCh, chatWSOutbound{
				Type: "error", Code: "invalid_argument", Message: "type must be \"message\"",
			})
			continue
		}
		if strings.TrimSpace(in.Message) == "" {
			pushChatWS(ctx, writeCh, chatWSOutbound{
				Type: "error", Code: "invalid_argument", Message: "message is required",
			})
			continue
		}

		conversationID := strings.TrimSpace(in.ConversationID)
		if conversationID == "" {
			conversationID = snap.Info.FullName
		}
		reply, err := s.chat.Ask(ctx, snap, conversationID, in.Message)
		if err != nil {
			pushChatWS(ctx, writeCh, chatWSOutbound{
				Type: "error", Code: string(ingest.KindOf(err)), Message: err.Error(),
			})
			continue
		}
		pushChatWS(ctx, writeCh, chatWSOutbound{
			Type: "reply", Reply: reply, ConversationID: conversationID,
		})
	}
}

func pushChatWS(ctx context.Context, ch chan<- chatWSOutbound, out chatWSOutbound) {
	select {
	case ch <- out:
	case <-ctx.Done():
	}
}
