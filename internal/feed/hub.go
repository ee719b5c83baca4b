package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/metrics"
)

const maxClientsPerSession = 50

// Update is the JSON payload pushed to feed subscribers after each
// analyzed message.
type Update struct {
	Role      domain.Role  `json:"role"`
	Label     domain.Label `json:"label"`
	Compound  float64      `json:"compound"`
	Timestamp time.Time    `json:"timestamp"`
}

type sessionClients map[*websocket.Conn]*clientWriter

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	sessionID    uuid.UUID
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseHubCmd
	sessionID  uuid.UUID
	connection *websocket.Conn
}

type broadcastCmd struct {
	baseHubCmd
	sessionID uuid.UUID
	data      []byte
}

type clientCountCmd struct {
	baseHubCmd
	sessionID    uuid.UUID
	replyChannel chan int
}

type stopCmd struct {
	baseHubCmd
}

// Hub manages WebSocket subscribers grouped by session and pushes sentiment
// updates to them as messages are analyzed.
type Hub struct {
	cmdCh   chan hubCmd
	clients map[uuid.UUID]sessionClients
}

// NewHub creates a hub and starts its actor goroutine.
func NewHub() *Hub {
	h := &Hub{
		cmdCh:   make(chan hubCmd, 256),
		clients: make(map[uuid.UUID]sessionClients),
	}
	go h.run()
	return h
}

// Register adds a subscriber to a session's feed. Returns an error if the
// session is at its client limit.
func (h *Hub) Register(sessionID uuid.UUID, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- registerCmd{sessionID: sessionID, connection: conn, errorChannel: errCh}
	return <-errCh
}

// Unregister removes a subscriber from a session's feed.
func (h *Hub) Unregister(sessionID uuid.UUID, conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{sessionID: sessionID, connection: conn}
}

// Broadcast pushes an update to every subscriber of the session.
func (h *Hub) Broadcast(sessionID uuid.UUID, update Update) {
	data, err := json.Marshal(update)
	if err != nil {
		slog.Error("failed to marshal feed update", "error", err)
		return
	}
	h.cmdCh <- broadcastCmd{sessionID: sessionID, data: data}
}

// ClientCount returns the number of subscribers for a session.
func (h *Hub) ClientCount(sessionID uuid.UUID) int {
	replyCh := make(chan int, 1)
	h.cmdCh <- clientCountCmd{sessionID: sessionID, replyChannel: replyCh}
	return <-replyCh
}

// Stop shuts down the hub, closing all subscriber connections.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c)
		case broadcastCmd:
			h.handleBroadcast(c)
		case clientCountCmd:
			c.replyChannel <- len(h.clients[c.sessionID])
		case stopCmd:
			h.handleStop()
			return
		default:
			slog.Warn("feed hub: unknown command", "type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	clients, exists := h.clients[c.sessionID]
	if !exists {
		clients = make(sessionClients)
		h.clients[c.sessionID] = clients
	}

	if len(clients) >= maxClientsPerSession {
		slog.Warn("rejecting feed client: session full", "session_id", c.sessionID, "max", maxClientsPerSession)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients per session (%d) reached", maxClientsPerSession)
		return
	}

	clients[c.connection] = newClientWriter(c.connection)
	metrics.FeedConnectedClients.Inc()
	slog.Debug("feed client registered", "session_id", c.sessionID, "total", len(clients))
	c.errorChannel <- nil
}

func (h *Hub) handleUnregister(c unregisterCmd) {
	clients, exists := h.clients[c.sessionID]
	if !exists {
		return
	}

	cw, exists := clients[c.connection]
	if !exists {
		return
	}

	cw.stop()
	delete(clients, c.connection)
	metrics.FeedConnectedClients.Dec()

	if len(clients) == 0 {
		delete(h.clients, c.sessionID)
		slog.Debug("last feed client disconnected", "session_id", c.sessionID)
	}
}

func (h *Hub) handleBroadcast(c broadcastCmd) {
	clients, exists := h.clients[c.sessionID]
	if !exists {
		return
	}

	var slow []*websocket.Conn
	for conn, writer := range clients {
		select {
		case writer.sendChannel <- c.data:
			metrics.FeedMessagesSent.Inc()
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		metrics.FeedSendFailures.Inc()
		slog.Warn("disconnecting slow feed client", "session_id", c.sessionID)
		h.handleUnregister(unregisterCmd{sessionID: c.sessionID, connection: conn})
	}
}

func (h *Hub) handleStop() {
	for sessionID, clients := range h.clients {
		for _, cw := range clients {
			cw.stop()
			metrics.FeedConnectedClients.Dec()
		}
		delete(h.clients, sessionID)
	}
}
