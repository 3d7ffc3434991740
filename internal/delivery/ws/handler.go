package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/incorgnihealth/api/internal/usecase"
	"github.com/incorgnihealth/api/pkg/jwt"
	"github.com/incorgnihealth/api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin is enforced by the CORS layer in front.
	},
}

// Handler authenticates websocket upgrades and routes inbound events.
// Browsers cannot set headers on a websocket handshake, so the access token
// travels in the ?token= query parameter and is checked against the same
// Redis allowlist the HTTP middleware uses.
type Handler struct {
	hub         *Hub
	log         *logrus.Logger
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	chatUsecase usecase.ChatUsecase
}

func NewHandler(
	hub *Hub,
	log *logrus.Logger,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	chatUsecase usecase.ChatUsecase,
) *Handler {
	return &Handler{
		hub:         hub,
		log:         log,
		jwtService:  jwtService,
		redisClient: redisClient,
		chatUsecase: chatUsecase,
	}
}

// Connect upgrades the HTTP request and starts the client's pumps. Auth
// happens before the upgrade; a bad token never becomes a socket.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Token is required")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.AccessToken {
		response.Unauthorized(w, "Invalid or expired token")
		return
	}

	tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := h.redisClient.Exists(r.Context(), tokenKey).Result()
	if err != nil {
		response.InternalServerError(w, "Failed to validate token")
		return
	}
	if exists == 0 {
		response.Unauthorized(w, "Token has been revoked")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("Failed to upgrade websocket: %+v", err)
		return
	}

	client := &Client{
		UserID:   claims.UserID,
		PublicID: claims.PublicID,
		Role:     claims.Role,
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		handler:  h,
		rooms:    make(map[string]struct{}),
	}

	h.hub.Register(client)
	h.log.Infof("Websocket connected: user=%s", claims.PublicID)

	go client.writePump()
	go client.readPump()
}

func (h *Handler) dispatch(client *Client, event Event) {
	switch event.Event {
	case EventJoinRoom:
		h.handleJoinRoom(client, event.Data)
	case EventSendMessage:
		h.handleSendMessage(client, event.Data)
	case EventTyping:
		h.handleTyping(client, event.Data, EventUserTyping)
	case EventStopTyping:
		h.handleTyping(client, event.Data, EventStopTyping)
	}
}

func (h *Handler) handleJoinRoom(client *Client, data json.RawMessage) {
	var payload joinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" {
		client.sendEvent(EventError, errorPayload{Message: "room_id is required"})
		return
	}

	h.hub.Join(client, payload.RoomID)
}

// handleSendMessage persists the message and only then relays it to the
// room. A message that failed to persist is never seen by the peer.
func (h *Handler) handleSendMessage(client *Client, data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" || payload.Content == "" {
		client.sendEvent(EventError, errorPayload{Message: "room_id and content are required"})
		return
	}

	consultationID, err := uuid.Parse(payload.RoomID)
	if err != nil {
		client.sendEvent(EventError, errorPayload{Message: "Invalid room ID"})
		return
	}

	// The socket outlives any single request; persistence runs on its own
	// background context.
	message, err := h.chatUsecase.SaveMessage(context.Background(), consultationID, client.UserID, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrConsultationNotFound):
			client.sendEvent(EventError, errorPayload{Message: "Consultation not found"})
		case errors.Is(err, usecase.ErrNotParticipant):
			client.sendEvent(EventError, errorPayload{Message: "You are not a participant of this consultation"})
		default:
			client.sendEvent(EventError, errorPayload{Message: "Failed to send message"})
		}
		return
	}

	h.hub.BroadcastToRoom(payload.RoomID, EventReceiveMessage, message)
}

func (h *Handler) handleTyping(client *Client, data json.RawMessage, outEvent string) {
	var payload typingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" {
		return
	}

	h.hub.BroadcastToRoomExcept(payload.RoomID, client, outEvent, typingPayload{
		RoomID:   payload.RoomID,
		PublicID: client.PublicID,
	})
}
