package notify

import "sync"

const DefaultHistory = 50

// Hub keeps the most recent notifications and pushes new ones to
// subscribers. Slow subscribers miss notifications instead of blocking.
type Hub struct {
	mu          sync.RWMutex
	limit       int
	buffer      []Notification
	subscribers map[chan Notification]struct{}
}

func NewHub(limit int) *Hub {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &Hub{
		limit:       limit,
		buffer:      make([]Notification, 0, limit),
		subscribers: make(map[chan Notification]struct{}),
	}
}

func (h *Hub) Notify(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.buffer) >= h.limit {
		copy(h.buffer, h.buffer[1:])
		h.buffer[len(h.buffer)-1] = n
	} else {
		h.buffer = append(h.buffer, n)
	}
	for ch := range h.subscribers {
		select {
		case ch <- n:
		default:
		}
	}
}

// Recent returns the stored notifications, oldest first.
func (h *Hub) Recent() []Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Notification, len(h.buffer))
	copy(out, h.buffer)
	return out
}

func (h *Hub) Subscribe() chan Notification {
	ch := make(chan Notification, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Notification) {
	if ch == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}
