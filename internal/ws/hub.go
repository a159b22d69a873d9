package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/notify"
)

// Client is one websocket connection bound to a user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
}

// Message is a payload for every connection of one user.
type Message struct {
	UserID string
	Data   []byte
}

// Hub tracks connections per user. Events only reach the owning user.
type Hub struct {
	Clients    map[string]map[*websocket.Conn]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan Message
	mutex      sync.Mutex
	log        logging.Logger
	done       chan struct{}
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		Clients:    make(map[string]map[*websocket.Conn]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan Message),
		log:        log,
		done:       make(chan struct{}),
	}
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.Register:
			h.mutex.Lock()
			if h.Clients[c.UserID] == nil {
				h.Clients[c.UserID] = make(map[*websocket.Conn]bool)
			}
			h.Clients[c.UserID][c.Conn] = true
			h.mutex.Unlock()
			h.log.Info(ctx, "ws client connected", "user_id", c.UserID)

		case c := <-h.Unregister:
			h.mutex.Lock()
			h.drop(c.UserID, c.Conn)
			h.mutex.Unlock()

		case msg := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients[msg.UserID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
					h.drop(msg.UserID, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// drop must be called with the mutex held.
func (h *Hub) drop(userID string, conn *websocket.Conn) {
	conns, ok := h.Clients[userID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		conn.Close()
	}
	if len(conns) == 0 {
		delete(h.Clients, userID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for userID, conns := range h.Clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.Clients, userID)
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Join registers c. It reports false when the hub has already stopped.
func (h *Hub) Join(c Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters c, or returns at once when the hub has stopped.
func (h *Hub) Leave(c Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Connected reports how many sockets a user has open.
func (h *Hub) Connected(userID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients[userID])
}

// Notify implements notify.Notifier.
func (h *Hub) Notify(ctx context.Context, ev notify.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case h.Broadcast <- Message{UserID: ev.UserID, Data: data}:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
