package http

import (
	"net/http"
	"time"

	"dispatch/internal/adapters/out/eventbus"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// EventStream is what the WebSocket endpoint needs from the broadcaster.
type EventStream interface {
	Subscribe() *eventbus.Subscription
	Unsubscribe(sub *eventbus.Subscription)
}

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// StreamEvents handles GET /ws - upgrades the connection and forwards
// domain events to the client as JSON frames. Events published while
// the client cannot keep up are dropped, not queued; clients re-query
// the REST endpoints after reconnecting.
func (s *Server) StreamEvents(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sub := s.events.Subscribe()
	defer s.events.Unsubscribe(sub)

	// Drain client frames so pongs and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if writeErr := conn.WriteJSON(event); writeErr != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if pingErr := conn.WriteMessage(websocket.PingMessage, nil); pingErr != nil {
				return nil
			}
		case <-done:
			return nil
		case <-ctx.Request().Context().Done():
			return nil
		}
	}
}
