// Package ws pushes bookmark changes to connected dashboards over websocket.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/MrSnakeDoc/staffdash/internal/bookmarks"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/metrics"
)

const (
	sendBuffer  = 256
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
	maxReadSize = 1024
)

// Event is the JSON message sent to clients.
type Event struct {
	Type       string `json:"type"` // "snapshot" | "bookmark"
	ID         int    `json:"id,omitempty"`
	Bookmarked bool   `json:"bookmarked"`
	IDs        []int  `json:"ids,omitempty"`
	Count      int    `json:"count"`
}

// Client is one websocket connection.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub owns the set of clients. All map access happens on the Run goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]struct{}
	count      chan chan int
	done       chan struct{}
	snapshot   func() []int
	logger     logger.Logger
}

// NewHub creates a hub. snapshot returns the current bookmark ids and is sent
// to every client right after it registers.
func NewHub(snapshot func() []int, log logger.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		clients:    make(map[*Client]struct{}),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		snapshot:   snapshot,
		logger:     log,
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			ids := h.snapshot()
			hello, _ := json.Marshal(Event{Type: "snapshot", IDs: ids, Count: len(ids)})
			c.send <- hello
			metrics.WebsocketClients.Set(float64(len(h.clients)))
			h.logger.Debug("ws client connected", logger.String("client", c.id))
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer.
					h.logger.Warn("ws client too slow, disconnecting", logger.String("client", c.id))
					h.drop(c)
				}
			}
		case reply := <-h.count:
			reply <- len(h.clients)
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	h.logger.Debug("ws client disconnected", logger.String("client", c.id))
}

// Clients returns the number of connected clients, or 0 once the hub stopped.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// OnBookmarkChange is a bookmarks.Store observer. It never blocks the store:
// when the broadcast queue is full the event is dropped.
func (h *Hub) OnBookmarkChange(ch bookmarks.Change) {
	msg, _ := json.Marshal(Event{Type: "bookmark", ID: ch.ID, Bookmarked: ch.Bookmarked, Count: ch.Count})
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("ws broadcast queue full, dropping event", logger.Int("id", ch.ID))
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and streams hub events until the client goes
// away.
func ServeWS(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", logger.Error(err))
			return
		}

		c := &Client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
		select {
		case h.register <- c:
		case <-h.done:
			_ = conn.Close()
			return
		}

		go c.readPump(h)
		c.writePump()
	}
}

// readPump discards client messages and keeps the read deadline alive.
func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
