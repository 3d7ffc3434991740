package ws

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub() *Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHub(log)
}

func stubClient() *Client {
	return &Client{
		send:  make(chan []byte, sendBufferSize),
		rooms: make(map[string]struct{}),
	}
}

func drainEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case raw := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected an event in the send buffer")
		return Event{}
	}
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := testHub()

	a := stubClient()
	b := stubClient()
	outsider := stubClient()

	hub.Register(a)
	hub.Register(b)
	hub.Register(outsider)
	hub.Join(a, "room-1")
	hub.Join(b, "room-1")
	hub.Join(outsider, "room-2")

	hub.BroadcastToRoom("room-1", EventReceiveMessage, map[string]string{"content": "hi"})

	for _, c := range []*Client{a, b} {
		event := drainEvent(t, c)
		assert.Equal(t, EventReceiveMessage, event.Event)
		assert.JSONEq(t, `{"content":"hi"}`, string(event.Data))
	}
	assert.Empty(t, outsider.send)
}

func TestHubBroadcastToRoomExcept(t *testing.T) {
	hub := testHub()

	sender := stubClient()
	peer := stubClient()

	hub.Register(sender)
	hub.Register(peer)
	hub.Join(sender, "room-1")
	hub.Join(peer, "room-1")

	hub.BroadcastToRoomExcept("room-1", sender, EventUserTyping, map[string]string{"room_id": "room-1"})

	event := drainEvent(t, peer)
	assert.Equal(t, EventUserTyping, event.Event)
	assert.Empty(t, sender.send)
}

func TestHubSkipsClientsWithFullBuffers(t *testing.T) {
	hub := testHub()

	slow := stubClient()
	slow.send = make(chan []byte) // unbuffered and never read
	fast := stubClient()

	hub.Register(slow)
	hub.Register(fast)
	hub.Join(slow, "room-1")
	hub.Join(fast, "room-1")

	// Must not block on the slow client.
	hub.BroadcastToRoom("room-1", EventReceiveMessage, map[string]string{"content": "hi"})

	drainEvent(t, fast)
}

func TestHubUnregister(t *testing.T) {
	hub := testHub()

	a := stubClient()
	b := stubClient()

	hub.Register(a)
	hub.Register(b)
	hub.Join(a, "room-1")
	hub.Join(b, "room-1")

	assert.Equal(t, 2, hub.ClientCount())
	assert.Equal(t, 2, hub.RoomCount("room-1"))

	hub.Unregister(a)
	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 1, hub.RoomCount("room-1"))

	// The send channel is closed so the write pump can exit.
	_, open := <-a.send
	assert.False(t, open)

	// Unregistering twice is harmless.
	hub.Unregister(a)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(b)
	assert.Equal(t, 0, hub.RoomCount("room-1"))
}
