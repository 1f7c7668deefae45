package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stocky-backend/internal/logger"
	"stocky-backend/internal/usecase/shoppinglist"
)

// Message is the wire frame pushed to subscribers of a shopping list.
type Message struct {
	Type    string                 `json:"type"`
	ListID  uuid.UUID              `json:"list_id"`
	ActorID uuid.UUID              `json:"actor_id"`
	Details map[string]interface{} `json:"details,omitempty"`
	Time    time.Time              `json:"time"`
}

// Hub fans committed shopping list events out to websocket subscribers. Each
// connection subscribes to exactly one list.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan Message, 64),
	}
}

// Run owns the subscriber set. Start it once, before serving connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

// Publish implements shoppinglist.Notifier. It never blocks the caller: when
// the broadcast queue is full the event is dropped.
func (h *Hub) Publish(event *shoppinglist.ListEvent) {
	message := Message{
		Type:    event.Action,
		ListID:  event.ListID,
		ActorID: event.ActorID,
		Details: event.Details,
		Time:    time.Now(),
	}

	select {
	case h.broadcast <- message:
	default:
		logger.Warn("Dropping list event, broadcast queue full",
			zap.String("list_id", event.ListID.String()),
			zap.String("action", event.Action),
		)
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[client.listID] == nil {
		h.subscribers[client.listID] = make(map[*Client]bool)
	}
	h.subscribers[client.listID][client] = true

	logger.Debug("Websocket client subscribed",
		zap.String("list_id", client.listID.String()),
		zap.Int("subscribers", len(h.subscribers[client.listID])),
	)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subscribers[client.listID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.subscribers, client.listID)
	}
}

func (h *Hub) fanOut(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.subscribers[message.ListID]
	for client := range clients {
		select {
		case client.send <- message:
		default:
			// Slow consumer: drop the connection rather than the hub.
			delete(clients, client)
			close(client.send)
		}
	}
	if len(clients) == 0 {
		delete(h.subscribers, message.ListID)
	}
}
