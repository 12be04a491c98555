package stream

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// SnapshotFunc returns the encoded frame a newly connected client starts from.
type SnapshotFunc func() ([]byte, error)

// Hub manages websocket clients and fans frames out to them.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	snapshot SnapshotFunc
	logger   *slog.Logger
	closed   bool
}

// NewHub creates a hub. snapshot may be nil, in which case clients start
// with the next published frame.
func NewHub(snapshot SnapshotFunc, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		snapshot: snapshot,
		logger:   logger.With("component", "stream"),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("upgrade failed", "error", err)
		return
	}

	if !h.join(conn) {
		conn.Close()
		return
	}

	// Incoming messages are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
	h.logger.Debug("client left", "remote", req.RemoteAddr)
}

func (h *Hub) join(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if h.snapshot != nil {
		data, err := h.snapshot()
		if err != nil {
			h.logger.Warn("snapshot failed", "error", err)
			return false
		}
		if err := write(conn, data); err != nil {
			return false
		}
	}
	h.clients[conn] = true
	h.logger.Debug("client joined", "remote", conn.RemoteAddr().String(), "clients", len(h.clients))
	return true
}

// Publish calls produce and broadcasts its result. produce runs with the hub
// locked, so it is serialized with snapshots taken for joining clients.
// A nil result is not broadcast.
func (h *Hub) Publish(produce func() ([]byte, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, err := produce()
	if err != nil || data == nil {
		return err
	}
	h.broadcast(data)
	return nil
}

// Do runs fn with the hub locked.
func (h *Hub) Do(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

// Broadcast sends data to every client as a binary message.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	for client := range h.clients {
		if err := write(client, data); err != nil {
			h.logger.Debug("dropping client", "error", err)
			delete(h.clients, client)
			client.Close()
		}
	}
}

func write(conn *websocket.Conn, data []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
	for client := range h.clients {
		client.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		client.Close()
		delete(h.clients, client)
	}
}
