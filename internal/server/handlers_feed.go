package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards embed the feed cross-origin
	},
}

func (s *Server) handleFeed(c echo.Context) error {
	sessionID, err := sessionIDFromPath(c)
	if err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.feed.Register(sessionID, conn); err != nil {
		slog.Warn("feed registration rejected", "session_id", sessionID, "error", err)
		return nil
	}

	// Read pump, blocks until the client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.feed.Unregister(sessionID, conn)

	return nil //nolint:nilerr // ReadMessage err is block-scoped; outer err is nil
}
