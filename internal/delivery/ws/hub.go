// Package ws is the realtime chat relay. Each consultation is a room; a
// connected client joins rooms and exchanges events with the other
// participant. Messages are persisted before they are relayed, so the relay
// never carries state the database does not.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is the wire envelope for everything crossing a socket, in either
// direction.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound event names.
const (
	EventReceiveMessage = "receive_message"
	EventUserTyping     = "user_typing"
	EventStopTyping     = "stop_typing"
	EventError          = "error"
)

// Inbound event names. stop_typing is the same token in both directions.
const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
)

// Hub tracks which clients are in which rooms. All operations are
// thread-safe via sync.RWMutex.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	all   map[*Client]struct{}
	log   *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
		log:   log,
	}
}

// Register adds a connected client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}
}

// Unregister removes a client from the hub and every room it joined, and
// closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	for room := range client.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}

	delete(h.all, client)
	close(client.send)
}

// Join adds the client to a room.
func (h *Hub) Join(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][client] = struct{}{}
	client.rooms[roomID] = struct{}{}
}

// BroadcastToRoom sends an event to every client in the room. Clients whose
// send buffer is full are skipped rather than blocked on.
func (h *Hub) BroadcastToRoom(roomID string, event string, payload interface{}) {
	data, err := marshalEvent(event, payload)
	if err != nil {
		h.log.Warnf("Failed to marshal %s event: %+v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// BroadcastToRoomExcept is BroadcastToRoom minus the originating client;
// used for typing indicators, which a client does not need echoed back.
func (h *Hub) BroadcastToRoomExcept(roomID string, sender *Client, event string, payload interface{}) {
	data, err := marshalEvent(event, payload)
	if err != nil {
		h.log.Warnf("Failed to marshal %s event: %+v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if client == sender {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients in a room.
func (h *Hub) RoomCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func marshalEvent(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: data})
}
