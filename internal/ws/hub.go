package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"jobboard/internal/domain/analytics"
)

// ActivityEvent is the frame pushed to admin dashboards for every new
// user, job or application.
type ActivityEvent struct {
	Type      string             `json:"type"`
	Activity  analytics.Activity `json:"activity"`
	Timestamp string             `json:"timestamp"`
}

const eventActivity = "activity"

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("WS connected | total_clients=%d", total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.logf("WS disconnected | total_clients=%d", h.ClientCount())

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					// slow consumer
					h.remove(client)
				}
			}
			h.logf("WS broadcast | clients=%d", len(snapshot))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("WS broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) BroadcastActivity(a analytics.Activity) {
	if h == nil {
		return
	}
	b, err := json.Marshal(ActivityEvent{
		Type:      eventActivity,
		Activity:  a,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logf("WS encode error | error=%v", err)
		return
	}
	h.Broadcast(b)
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
