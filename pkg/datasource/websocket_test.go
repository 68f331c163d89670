package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T, messages []string, closeAfter bool) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		if closeAfter {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		}
		// Keep the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestDatasourceWebsocket_Rows(t *testing.T) {
	server := newFeedServer(t, []string{"a,b;c,d", "e,f"}, true)
	defer server.Close()

	src := NewWebsocketSource(wsURL(server))
	defer func() { _ = src.Close() }()

	assert.Equal(t, []string{"a,b", "c,d", "e,f"}, drain(t, src))
}

func TestDatasourceWebsocket_Canceled(t *testing.T) {
	server := newFeedServer(t, nil, false)
	defer server.Close()

	src := NewWebsocketSource(wsURL(server))
	defer func() { _ = src.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := src.Next(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDatasourceWebsocket_DialError(t *testing.T) {
	_, err := NewWebsocketSource("ws://127.0.0.1:1/feed").Next(context.Background())
	assert.Error(t, err)
}
