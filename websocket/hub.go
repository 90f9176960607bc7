// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"hotel-management-backend/db/models"
)

type MessageType string

const (
	MessageTypeReservationEvent MessageType = "RESERVATION_EVENT"
	MessageTypeResourceEvent    MessageType = "RESOURCE_EVENT"
	MessageTypeError            MessageType = "ERROR"
)

type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Action    string      `json:"action,omitempty"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type Client struct {
	ID      uuid.UUID
	ActorID string
	Conn    *websocket.Conn
	Hub     *Hub
	Send    chan WebSocketMessage
}

// Hub fans reservation lifecycle events out to the connected dashboard
// clients. It satisfies the orchestrator's broadcaster port.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(message WebSocketMessage) {
	h.broadcast <- message
}

// BroadcastReservationEvent pushes a reservation lifecycle event to every
// connected dashboard. Non-blocking for the caller.
func (h *Hub) BroadcastReservationEvent(action string, reservation *models.Reservation) {
	h.Broadcast(WebSocketMessage{
		Type:      MessageTypeReservationEvent,
		Action:    action,
		Payload:   reservation,
		Timestamp: time.Now(),
	})
}

// broadcastToAll sends a message to all connected clients
func (h *Hub) broadcastToAll(message WebSocketMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
