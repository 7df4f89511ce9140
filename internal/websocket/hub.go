package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"lead-engagement-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "widget_cluster_events"

// Frame is the envelope of every message pushed to a widget connection.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// CommandHandler executes a frame sent by the visitor and returns frames to
// push back to the sender only (errors, acknowledgements).
type CommandHandler interface {
	HandleFrame(ctx context.Context, sessionID string, raw []byte) []Frame
}

type clusterMessage struct {
	Origin          string          `json:"origin"`
	TargetSessionID string          `json:"target_session_id"`
	Message         json.RawMessage `json:"message"`
}

type Hub struct {
	// session id -> connections (several tabs may watch the same widget)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	disconnect chan string
	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	rdb      *redis.Client
	instance string
	handler  CommandHandler

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		disconnect: make(chan string, 64),
		done:       make(chan struct{}),
		rdb:        rdb,
		instance:   uuid.NewString(),
		logger:     log,
	}
}

// SetCommandHandler wires the receiver of inbound visitor frames.
func (h *Hub) SetCommandHandler(handler CommandHandler) {
	h.handler = handler
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.remove(client)

		case sessionID := <-h.disconnect:
			h.mu.RLock()
			clients := append([]*Client(nil), h.clients[sessionID]...)
			h.mu.RUnlock()
			for _, c := range clients {
				h.remove(c)
			}
		}
	}
}

// attach registers client. It reports false once the hub has stopped.
func (h *Hub) attach(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// detach unregisters client. It returns immediately once the hub has stopped.
func (h *Hub) detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Info("Hub", "Session has no more connections", map[string]interface{}{"session_id": client.SessionID})
	}
}

// Send pushes a frame to every connection watching sessionID, here and on the
// other instances.
func (h *Hub) Send(sessionID string, frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode frame", map[string]interface{}{"type": frame.Type, "error": err})
		return
	}

	h.deliver(sessionID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.instance, TargetSessionID: sessionID, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"session_id": sessionID, "error": err})
		}
	}
}

// Disconnect closes every connection of sessionID.
func (h *Hub) Disconnect(sessionID string) {
	select {
	case h.disconnect <- sessionID:
	default:
		h.logger.Warn("Hub", "Disconnect queue full", map[string]interface{}{"session_id": sessionID})
	}
}

// Connections reports the local connection count of sessionID.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) deliver(sessionID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			go h.detach(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err})
			continue
		}
		if payload.Origin == h.instance {
			continue
		}
		h.deliver(payload.TargetSessionID, payload.Message)
	}
}
