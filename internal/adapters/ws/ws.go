/*
 * file: ws.go
 * package: ws
 * description:
 *     WebSocket transport for the match server: one Hub-less connection
 *     per client (there is no room concept here -- fan-out is entirely
 *     the session.Registry's job), reading line-oriented text commands
 *     and handing each to the dispatcher, writing back whatever the
 *     dispatcher replies plus anything published to this connection's
 *     subscribed topics. Generalized from the teacher's room-keyed
 *     Hub/Client pair to a single flat connection registry, since the
 *     registry already owns topic membership.
 */

package ws

import (
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arborly/matchkeep/internal/core/dispatch"
	"github.com/arborly/matchkeep/internal/core/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub owns the single monotonically increasing connection-id counter and
// the router every connection dispatches commands through.
type Hub struct {
	router *dispatch.Router
	nextID atomic.Uint64
}

func NewHub(router *dispatch.Router) *Hub {
	return &Hub{router: router}
}

// client is one live websocket connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan string
	id   session.ConnID
}

// ServeWs upgrades r to a websocket and runs the connection's read/write
// pumps until it disconnects. Every new connection starts in the legacy
// protocol version; `version 2` upgrades it (spec 4.A).
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR: websocket upgrade failed: %v", err)
		return
	}

	id := session.ConnID(h.nextID.Add(1))
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan string, sendBufferSize),
		id:   id,
	}
	h.router.Registry.InsertClient(id, c.send, session.Legacy)

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.router.Registry.RemoveClient(c.id)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN: websocket read error on connection %d: %v", c.id, err)
			}
			return
		}
		reply := c.hub.router.Dispatch(c.id, string(message))
		if reply != "" {
			select {
			case c.send <- reply:
			default:
				log.Printf("WARN: dropping reply to connection %d, buffer full", c.id)
			}
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write([]byte(message))
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
