package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Hub struct {
	mu                  sync.Mutex
	clients             map[*Client]struct{}
	broadcastStatus     chan StatusResponse
	broadcastHistory    chan historyPayload
	broadcastPrecompute chan PrecomputeEvent
}

type Client struct {
	id   string
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:             make(map[*Client]struct{}),
		broadcastStatus:     make(chan StatusResponse, 32),
		broadcastHistory:    make(chan historyPayload, 32),
		broadcastPrecompute: make(chan PrecomputeEvent, 64),
	}
}

func NewClient(hub *Hub) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		send: make(chan []byte, 16),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastStatus:
			h.fanout(wsMessage{Type: "status", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastHistory:
			h.fanout(wsMessage{Type: "history", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastPrecompute:
			h.fanout(wsMessage{Type: "precompute", Payload: mustMarshal(payload)})
		}
	}
}

// PublishPrecompute never blocks the worker: events are dropped when the
// buffer is full or nobody is listening.
func (h *Hub) PublishPrecompute(event PrecomputeEvent) {
	if !h.HasClients() {
		return
	}
	select {
	case h.broadcastPrecompute <- event:
	default:
	}
}

func (h *Hub) fanout(msg wsMessage) {
	h.mu.Lock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
	h.mu.Unlock()
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	online := len(h.clients)
	h.mu.Unlock()
	fmt.Printf("[ws] client %s connected (%d online)\n", c.id, online)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	online := len(h.clients)
	h.mu.Unlock()
	if ok {
		fmt.Printf("[ws] client %s disconnected (%d online)\n", c.id, online)
	}
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
