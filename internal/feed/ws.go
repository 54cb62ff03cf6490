package feed

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams snapshots of topic until
// either side closes. Unknown topics are rejected before the upgrade.
func (h *Hub) ServeWebSocket(w http.ResponseWriter, r *http.Request, topic string) error {
	if _, ok := h.loaders[topic]; !ok {
		return ErrUnknownTopic
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already wrote an error response.
		return nil
	}

	sub, err := h.Subscribe(topic)
	if err != nil {
		conn.Close()
		return nil
	}
	log.Printf("feed: %s subscribed to %s", r.RemoteAddr, topic)

	go h.readPump(conn, sub)
	h.writePump(conn, sub)
	return nil
}

// readPump only watches for the close frame; clients never send data.
func (h *Hub) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("feed: error reading from subscriber: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.C():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
