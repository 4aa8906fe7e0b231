// Package events fans ticket changes out to websocket subscribers.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	TicketCreated          = "ticket.created"
	TicketUpdated          = "ticket.updated"
	TicketMechanicsChanged = "ticket.mechanics_changed"
	TicketDeleted          = "ticket.deleted"
)

const writeWait = 5 * time.Second

// Event is the message pushed to every subscriber.
type Event struct {
	Type        string `json:"type"`
	TicketID    uint   `json:"ticket_id"`
	MechanicIDs []uint `json:"mechanic_ids"`
}

// Conn is the part of a websocket connection the hub writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Hub keeps the subscriber set and broadcasts from a single goroutine, so a
// connection never sees concurrent writes.
type Hub struct {
	clients   map[Conn]bool
	broadcast chan Event
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

// NewHub creates a hub and starts its broadcast loop. buffer bounds the
// number of events waiting to be sent.
func NewHub(buffer int) *Hub {
	h := &Hub{
		clients:   make(map[Conn]bool),
		broadcast: make(chan Event, buffer),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return
		case ev := <-h.broadcast:
			h.send(ev)
		}
	}
}

func (h *Hub) send(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).Warn("Failed to set write deadline, dropping subscriber.")
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Subscriber closed during broadcast, unregistering.")
			} else {
				logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).Warn("Failed to send ticket event, dropping subscriber.")
			}
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Subscriber registered with ticket hub.")
}

func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Subscriber unregistered from ticket hub.")
	}
}

// Subscribers returns the number of registered connections.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues ev without blocking. When the buffer is full the event is
// dropped.
func (h *Hub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithFields(logrus.Fields{"type": ev.Type, "ticket_id": ev.TicketID}).
			Warn("Ticket event channel full, dropping event.")
	}
}

// Close stops the broadcast loop and closes every subscriber.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		defer h.mu.Unlock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
	})
}
