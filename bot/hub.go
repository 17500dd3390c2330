package main

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub fans decision traces out to connected observer clients. It is
// part of the debug surface only; when no debug address is configured
// the hub never runs and the bot is a plain stdin/stdout process.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan decisionPayload
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan decisionPayload, 32),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "decision", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast never blocks the turn loop: if observers cannot keep up,
// traces are dropped.
func (h *Hub) Broadcast(payload decisionPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[hub] marshal failed: %v", err)
		return json.RawMessage("{}")
	}
	return data
}
