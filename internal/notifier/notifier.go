package notifier

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is what subscribers receive for every published change.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

const subscriberBuffer = 16

// Hub fans published events out to every live subscription. Delivery is
// best-effort and at-most-once: a subscriber whose buffer is full misses the
// event, and subscribers attached after a Publish never see it.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]chan Event
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe registers a new subscription and returns its handle together
// with the channel events arrive on. The channel is closed on Unsubscribe
// or hub shutdown.
func (h *Hub) Subscribe() (string, <-chan Event) {
	ch := make(chan Event, subscriberBuffer)
	id := uuid.New().String()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscription and closes its channel. Unknown or
// already-removed handles are ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish stamps the payload with the event type and current time and hands
// it to every subscription registered at this moment. Sends never block:
// a subscriber that cannot keep up simply drops the event.
func (h *Hub) Publish(eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions are currently registered.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close tears the hub down: every subscription is removed and its channel
// closed, and later Subscribe calls get an already-closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
