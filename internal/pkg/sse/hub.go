package sse

import (
	"sync"
)

// Event is one server-sent event addressed to a user.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub fans events out to the open SSE connections of each user. A user may
// hold several connections (multiple tabs); each gets its own channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a connection for userID and returns its channel plus
// a cleanup function the caller must invoke when the connection ends.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[userID][ch]; !ok {
			return
		}
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers the event to every open connection of the user. Sends
// are non-blocking; a connection that cannot keep up drops events rather
// than stalling the publisher.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishToMany delivers the event to each listed user.
func (h *Hub) PublishToMany(userIDs []string, event Event) {
	for _, userID := range userIDs {
		e := event
		e.UserID = userID
		h.Publish(userID, e)
	}
}
