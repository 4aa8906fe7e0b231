package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu      sync.Mutex
	events  []Event
	failing bool
	// deadlineFails makes SetWriteDeadline report an error.
	deadlineFails bool
	closed        bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deadlineFails {
		return errors.New("use of closed network connection")
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

func TestHubBroadcastsToEverySubscriber(t *testing.T) {
	hub := NewHub(8)
	defer hub.Close()

	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(a)
	hub.Register(b)

	hub.Publish(Event{Type: TicketCreated, TicketID: 7, MechanicIDs: []uint{1, 2}})

	for _, c := range []*fakeConn{a, b} {
		require.Eventually(t, func() bool { return len(c.received()) == 1 }, time.Second, 10*time.Millisecond)
		assert.Equal(t, Event{Type: TicketCreated, TicketID: 7, MechanicIDs: []uint{1, 2}}, c.received()[0])
	}
}

func TestHubDropsFailingSubscriber(t *testing.T) {
	hub := NewHub(8)
	defer hub.Close()

	bad := &fakeConn{failing: true}
	hub.Register(bad)
	hub.Publish(Event{Type: TicketDeleted, TicketID: 1})

	require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
	bad.mu.Lock()
	defer bad.mu.Unlock()
	assert.True(t, bad.closed)
}

func TestHubDropsSubscriberWhenDeadlineFails(t *testing.T) {
	hub := NewHub(8)
	defer hub.Close()

	bad := &fakeConn{deadlineFails: true}
	good := &fakeConn{}
	hub.Register(bad)
	hub.Register(good)
	hub.Publish(Event{Type: TicketUpdated, TicketID: 3})

	require.Eventually(t, func() bool { return len(good.received()) == 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, bad.received())
	bad.mu.Lock()
	defer bad.mu.Unlock()
	assert.True(t, bad.closed)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := &Hub{clients: make(map[Conn]bool), broadcast: make(chan Event, 1), done: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		hub.Publish(Event{Type: TicketUpdated, TicketID: 1})
		hub.Publish(Event{Type: TicketUpdated, TicketID: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full channel")
	}
	assert.Len(t, hub.broadcast, 1)
}

func TestUnregister(t *testing.T) {
	hub := NewHub(1)
	defer hub.Close()

	c := &fakeConn{}
	hub.Register(c)
	assert.Equal(t, 1, hub.Subscribers())
	hub.Unregister(c)
	assert.Equal(t, 0, hub.Subscribers())
}
