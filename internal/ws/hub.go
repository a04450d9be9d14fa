package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const redisChatChannel = "chat:messages"

// Event is a frame fanned out to chat clients
type Event struct {
	Type    string      `json:"type"` // "message"
	Payload interface{} `json:"payload"`
}

// Hub manages the single chat room: websocket clients on this instance
// plus Redis pub/sub fan-out across instances. Delivery is at-least-once
// with no ordering guarantee beyond the transport and no deduplication.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

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
				close(client.send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// slow consumer, drop it
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// PublishMessage fans a stored chat message out to every client. With
// Redis the publish round-trips through pub/sub so every instance
// (including this one) delivers exactly via its subscription; without
// Redis it goes straight to the local broadcast channel.
func (h *Hub) PublishMessage(msg *domain.ChatMessage) {
	data, err := json.Marshal(&Event{Type: "message", Payload: msg})
	if err != nil {
		return
	}

	if h.redisClient != nil {
		h.redisClient.Publish(h.ctx, redisChatChannel, data) //nolint:errcheck
		return
	}

	h.broadcast <- data
}

// subscribeRedis listens for chat messages published by any instance
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisChatChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast <- []byte(msg.Payload)
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
