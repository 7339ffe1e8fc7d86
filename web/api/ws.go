package api

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI may be served from a different origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsHandler streams the same events as /api/events over a websocket
func (s *Server) wsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := s.sseHub.Subscribe()

		// Reader goroutine: we never expect messages, but the read loop
		// is what surfaces the close frame.
		go func() {
			defer s.sseHub.Unsubscribe(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go func() {
			defer conn.Close()
			for event := range client {
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}()
	}
}
