// Package ws delivers notifications over WebSocket. A client connects, sends
// an auth message naming its user id, and from then on receives every event
// addressed to that user as a JSON frame. Events for users without a live
// connection land in a bounded per-user buffer and are served through the
// pull API instead.
package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/ports"

	"github.com/gorilla/websocket"
)

// errUnexpectedMessage reports a first frame that is not an auth message.
var errUnexpectedMessage = errors.New("expected an auth message")

const (
	// maxBufferedNotifications caps the offline buffer per user; older
	// entries are dropped first.
	maxBufferedNotifications = 50

	// sendQueueSize bounds the per-client send queue. A client that falls
	// this far behind is dropped and its events go to the offline buffer.
	sendQueueSize = 16

	// writeWait bounds a single frame write to a peer.
	writeWait = 10 * time.Second

	// authWait bounds how long a fresh connection may stay unauthenticated.
	authWait = 30 * time.Second

	maxMessageSize = 4 * 1024
)

// authMessage is the first frame a client must send.
type authMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// authSuccess confirms registration to the client.
type authSuccess struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// client is one live connection. All frames go through the send queue so a
// single writer goroutine owns the connection's write side.
type client struct {
	conn *websocket.Conn
	send chan ports.Notification
}

// Hub implements ports.Notifier and ports.NotificationInbox over live
// WebSocket connections plus the offline buffer. Notify never blocks on a
// peer: it hands the event to the client's writer goroutine or buffers it.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[kernel.UUID]*client
	buffers map[kernel.UUID][]ports.StoredNotification
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger.With("component", "ws_hub"),
		clients: make(map[kernel.UUID]*client),
		buffers: make(map[kernel.UUID][]ports.StoredNotification),
	}

	return h
}

// HandleConnection upgrades an HTTP request and serves the connection until
// the peer goes away. Meant to be mounted as the GET /ws handler.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	userID, err := h.waitForAuth(conn)
	if err != nil {
		h.logger.Warn("websocket auth failed", "error", err)
		_ = conn.Close()
		return nil
	}

	c := h.register(userID, conn)
	h.logger.Info("websocket client connected", "userId", userID.String())

	h.readLoop(userID, c)
	return nil
}

func (h *Hub) waitForAuth(conn *websocket.Conn) (kernel.UUID, error) {
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(authWait)); err != nil {
		return kernel.UUID{}, err
	}

	var msg authMessage
	if err := conn.ReadJSON(&msg); err != nil {
		return kernel.UUID{}, err
	}
	if msg.Type != "auth" {
		return kernel.UUID{}, errUnexpectedMessage
	}

	userID, err := kernel.UUIDFromString(msg.UserID)
	if err != nil {
		return kernel.UUID{}, err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteJSON(authSuccess{Type: "auth_success", UserID: userID.String()}); err != nil {
		return kernel.UUID{}, err
	}

	return userID, conn.SetReadDeadline(time.Time{})
}

func (h *Hub) register(userID kernel.UUID, conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan ports.Notification, sendQueueSize)}

	h.mu.Lock()
	if previous, ok := h.clients[userID]; ok {
		h.dropLocked(userID, previous)
		_ = previous.conn.Close()
	}
	h.clients[userID] = c
	h.mu.Unlock()

	go h.writeLoop(userID, c)
	return c
}

// dropLocked unregisters the client and closes its send queue, ending its
// writer. The queue is closed exactly once: only by whoever still finds the
// client in the map, always under h.mu.
func (h *Hub) dropLocked(userID kernel.UUID, c *client) {
	if h.clients[userID] != c {
		return
	}
	delete(h.clients, userID)
	close(c.send)
}

// readLoop drains the connection so close frames are processed; clients are
// not expected to send anything after auth.
func (h *Hub) readLoop(userID kernel.UUID, c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.dropLocked(userID, c)
	h.mu.Unlock()

	_ = c.conn.Close()
	h.logger.Info("websocket client disconnected", "userId", userID.String())
}

// writeLoop owns the connection's write side, draining the send queue. On a
// failed write the client is dropped and the undelivered events, this one and
// anything still queued, land in the offline buffer.
func (h *Hub) writeLoop(userID kernel.UUID, c *client) {
	for notification := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(notification); err != nil {
			h.logger.Warn("websocket push failed, buffering",
				"userId", userID.String(), "type", string(notification.Type))

			h.mu.Lock()
			h.dropLocked(userID, c)
			h.bufferLocked(userID, notification)
			// The queue is closed now, so this drain terminates.
			for queued := range c.send {
				h.bufferLocked(userID, queued)
			}
			h.mu.Unlock()

			_ = c.conn.Close()
			return
		}
	}
}

// Notify pushes a notification to the user's live connection, falling back to
// the offline buffer when there is none. A client whose send queue is full is
// treated as gone: dropped, with the event buffered.
func (h *Hub) Notify(recipientID kernel.UUID, notification ports.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[recipientID]
	if !ok {
		h.bufferLocked(recipientID, notification)
		return
	}

	select {
	case c.send <- notification:
	default:
		h.logger.Warn("websocket client too slow, buffering",
			"userId", recipientID.String(), "type", string(notification.Type))
		h.dropLocked(recipientID, c)
		_ = c.conn.Close()
		h.bufferLocked(recipientID, notification)
	}
}

func (h *Hub) bufferLocked(recipientID kernel.UUID, notification ports.Notification) {
	buffer := append(h.buffers[recipientID], ports.StoredNotification{
		Notification: notification,
	})
	if len(buffer) > maxBufferedNotifications {
		buffer = buffer[len(buffer)-maxBufferedNotifications:]
	}

	h.buffers[recipientID] = buffer
}

// Pending returns the user's unread notifications, oldest first, and marks
// them read. Read entries stay buffered until capacity pushes them out.
func (h *Hub) Pending(recipientID kernel.UUID) []ports.StoredNotification {
	h.mu.Lock()
	defer h.mu.Unlock()

	buffer := h.buffers[recipientID]
	pending := make([]ports.StoredNotification, 0, len(buffer))

	for i := range buffer {
		if buffer[i].Read {
			continue
		}

		pending = append(pending, buffer[i])
		buffer[i].Read = true
	}

	return pending
}

// Close drops every live connection, typically on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, c := range h.clients {
		h.dropLocked(userID, c)
		_ = c.conn.Close()
	}
}
