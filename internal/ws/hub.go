package ws

import (
	"sync"

	"chairduel/internal/logger"
)

// Hub fans match event payloads out to websocket observers. Observers
// subscribe per match id; the hub never feeds anything back into the match
// core.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[c.MatchID] == nil {
		h.subs[c.MatchID] = make(map[*Client]bool)
	}
	h.subs[c.MatchID][c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.subs[c.MatchID]; ok {
		if clients[c] {
			delete(clients, c)
			close(c.Send)
		}
		if len(clients) == 0 {
			delete(h.subs, c.MatchID)
		}
	}
}

// Broadcast sends a payload to every observer of a match. Slow observers are
// skipped rather than blocking the caller.
func (h *Hub) Broadcast(matchID string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subs[matchID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws observer send buffer full, dropping event", "match_id", matchID)
		}
	}
}

// SubscriberCount returns the number of observers of a match.
func (h *Hub) SubscriberCount(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[matchID])
}
