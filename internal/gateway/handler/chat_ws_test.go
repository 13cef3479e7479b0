package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialChatWS(t *testing.T, svc *Service, repo string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(svc.HandleChatWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?repo=" + repo
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func readChatWS(t *testing.T, conn *websocket.Conn) chatWSOutbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var out chatWSOutbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestHandleChatWS_RoundTrip(t *testing.T) {
	svc, fake := newTestService(newStubFetcher())
	fake.Reply = "the entry point is index.js"

	rec := post(t, svc.HandleAnalyze, `{"url":"octo/demo"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	conn, _, err := dialChatWS(t, svc, "octo/demo")
	require.NoError(t, err)

	ready := readChatWS(t, conn)
	require.Equal(t, "ready", ready.Type)
	require.Equal(t, "octo/demo", ready.ConversationID)

	require.NoError(t, conn.WriteJSON(chatWSInbound{Type: "message", Message: "where does it start?"}))

	reply := readChatWS(t, conn)
	require.Equal(t, "reply", reply.Type)
	require.Equal(t, "the entry point is index.js", reply.Reply)
	require.Equal(t, "octo/demo", reply.ConversationID)
	require.Equal(t, 1, fake.Calls())
}

func TestHandleChatWS_InvalidFrameKeepsConnection(t *testing.T) {
	svc, fake := newTestService(newStubFetcher())

	rec := post(t, svc.HandleAnalyze, `{"url":"octo/demo"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	conn, _, err := dialChatWS(t, svc, "octo/demo")
	require.NoError(t, err)
	require.Equal(t, "ready", readChatWS(t, conn).Type)

	require.NoError(t, conn.WriteJSON(chatWSInbound{Type: "subscribe"}))
	frame := readChatWS(t, conn)
	require.Equal(t, "error", frame.Type)
	require.Equal(t, "invalid_argument", frame.Code)
	require.Equal(t, 0, fake.Calls())

	// The connection survives a bad frame.
	require.NoError(t, conn.WriteJSON(chatWSInbound{Type: "message", Message: "still here?"}))
	require.Equal(t, "reply", readChatWS(t, conn).Type)
}

func TestHandleChatWS_NotYetAnalyzedRejectsHandshake(t *testing.T) {
	svc, _ := newTestService(newStubFetcher())

	conn, resp, err := dialChatWS(t, svc, "octo/demo")
	require.Error(t, err)
	require.Nil(t, conn)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}
