// Package realtime streams snapshot change events to browsers over websocket.
package realtime

import (
	"context"
	"sync"

	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"
)

const sendBuffer = 64

// envelope is a message addressed to a single client.
type envelope struct {
	client *Client
	data   []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
// A client whose buffer is full is dropped rather than slowing the others.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	direct     chan envelope
	done       chan struct{}
	log        *logger.Logger

	mu    sync.RWMutex
	count int
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Discard()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan envelope, 256),
		done:       make(chan struct{}),
		log:        log.With("realtime"),
	}
}

// Run owns the client set until ctx is cancelled, then closes every client.
// Only Run writes to or closes a client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setCount(len(h.clients))
			h.log.Debug("Websocket client connected", "client_id", client.id, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.log.Debug("Websocket client disconnected", "client_id", client.id, "total", len(h.clients))
			}

		case env := <-h.direct:
			if _, ok := h.clients[env.client]; ok {
				select {
				case env.client.send <- env.data:
				default:
					h.drop(env.client)
				}
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warn("Websocket client too slow, dropping", "client_id", client.id)
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setCount(len(h.clients))
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// Broadcast queues message for every client. It never blocks.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("Broadcast channel full, dropping message")
	}
}

// PublishEvent relays a snapshot event. It matches the store's subscriber
// signature.
func (h *Hub) PublishEvent(ev model.ChangeEvent) {
	data, err := NewMessage(TypeSnapshotReplaced, ev).JSON()
	if err != nil {
		h.log.Error("Failed to encode snapshot event", "error", err)
		return
	}
	h.Broadcast(data)
}

// SendTo queues data for one client. Unknown clients are ignored.
func (h *Hub) SendTo(client *Client, data []byte) {
	select {
	case h.direct <- envelope{client: client, data: data}:
	default:
		h.log.Warn("Direct channel full, dropping message", "client_id", client.id)
	}
}

// Register reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
