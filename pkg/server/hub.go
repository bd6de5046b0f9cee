package server

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/uploadkit/pkg/metrics"
)

// RefreshEvent asks pages to reload the document.
const RefreshEvent = "uploadkit:refresh"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Message is sent from the server to pages.
type Message struct {
	Event  string `json:"event"`
	Detail any    `json:"detail,omitempty"`
}

// Command is sent from pages to the server.
type Command struct {
	Action string `json:"action"`
}

// Hub fans events out to every connected page. It implements
// toast.Emitter.
type Hub struct {
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub. m may be nil.
func NewHub(logger *slog.Logger, m *metrics.Recorder) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger,
		metrics: m,
		clients: make(map[*client]struct{}),
	}
}

// Emit sends an event to every connected page. Pages that cannot keep up
// are disconnected.
func (h *Hub) Emit(name string, data any) {
	msg, err := json.Marshal(Message{Event: name, Detail: data})
	if err != nil {
		h.logger.Error("encode event", "event", name, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.removeLocked(c)
		}
	}
}

// Len returns the number of connected pages.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every page.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.ClientDisconnected()
}

// serve registers conn and reads commands until the page goes away.
// onCommand runs on the calling goroutine.
func (h *Hub) serve(conn *websocket.Conn, onCommand func(Command)) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.ClientConnected()
	h.logger.Debug("page connected", "remote", conn.RemoteAddr().String())

	go h.writeLoop(c)
	h.readLoop(c, onCommand)

	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
	h.logger.Debug("page disconnected", "remote", conn.RemoteAddr().String())
}

func (h *Hub) readLoop(c *client, onCommand func(Command)) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read", "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			h.logger.Warn("invalid command", "error", err)
			continue
		}
		onCommand(cmd)
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
