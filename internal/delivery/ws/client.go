package ws

import (
	"encoding/json"
	"time"

	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 256
)

// Conn abstracts the parts of a websocket connection the client uses, for
// testability.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// Client is one authenticated websocket connection.
type Client struct {
	UserID   uuid.UUID
	PublicID string
	Role     entity.Role

	hub     *Hub
	conn    Conn
	send    chan []byte
	handler *Handler
	rooms   map[string]struct{}
}

type joinRoomPayload struct {
	RoomID string `json:"room_id"`
}

type sendMessagePayload struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}

type typingPayload struct {
	RoomID   string `json:"room_id"`
	PublicID string `json:"public_id,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// readPump reads events off the socket until it closes. It runs in its own
// goroutine, one per connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			// Ignore malformed frames.
			continue
		}

		c.handler.dispatch(c, event)
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendEvent(event string, payload interface{}) {
	data, err := marshalEvent(event, payload)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
