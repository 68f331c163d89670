package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketSource reads feed payloads from a websocket stream. Every text
// message may carry several rows.
type WebsocketSource struct {
	url    string
	dialer *websocket.Dialer
	conn   *websocket.Conn

	pending []string
}

func NewWebsocketSource(url string) *WebsocketSource {
	return &WebsocketSource{
		url:    url,
		dialer: websocket.DefaultDialer,
	}
}

func (s *WebsocketSource) Connect(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("unable to dial %q: %w", s.url, err)
	}
	s.conn = conn
	return nil
}

func (s *WebsocketSource) Next(ctx context.Context) (string, error) {
	if s.conn == nil {
		if err := s.Connect(ctx); err != nil {
			return "", err
		}
	}

	for len(s.pending) == 0 {
		if err := s.read(ctx); err != nil {
			return "", err
		}
	}

	row := s.pending[0]
	s.pending = s.pending[1:]
	return row, nil
}

func (s *WebsocketSource) Close() error {
	if s.conn == nil {
		return nil
	}
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}

func (s *WebsocketSource) read(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	msgType, message, err := s.conn.ReadMessage()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) && (closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway) {
			return ErrEof
		}
		return fmt.Errorf("unable to read from %q: %w", s.url, err)
	}

	if msgType != websocket.TextMessage {
		return nil
	}
	s.pending = append(s.pending, SplitRows(string(message))...)
	return nil
}
