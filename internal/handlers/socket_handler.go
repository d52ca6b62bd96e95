package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/enums"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/hub"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/msgs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/services"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// SocketHandler runs each live connection through its lifecycle: authenticate
// before upgrade, register on the personal channel, serve events until the
// read loop ends, then unregister and unbind.
type SocketHandler struct {
	upgrader        websocket.Upgrader
	hub             *hub.Hub
	chatService     *services.ChatService
	presenceService *services.PresenceService
	typingService   *services.TypingService
	jwtKey          []byte
}

func NewSocketHandler(
	socketHub *hub.Hub,
	chatService *services.ChatService,
	presenceService *services.PresenceService,
	typingService *services.TypingService,
	jwtKey []byte,
) *SocketHandler {
	return &SocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub:             socketHub,
		chatService:     chatService,
		presenceService: presenceService,
		typingService:   typingService,
		jwtKey:          jwtKey,
	}
}

// HandleSocketRoute authenticates and upgrades the connection. An invalid
// token is rejected before any event is accepted.
func (sh *SocketHandler) HandleSocketRoute(ctx *gin.Context) {
	jwtToken := ctx.GetHeader("Authorization")
	if jwtToken == "" {
		jwtToken = ctx.Query("token")
	}
	if strings.Contains(jwtToken, "Bearer") {
		jwtToken = strings.Replace(jwtToken, "Bearer ", "", 1)
	}

	claims, err := utils.VerifyToken(jwtToken, sh.jwtKey)
	if err != nil || claims.ID == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  models.ErrorStrings(errs.ErrUnauthorized),
		})
		return
	}

	ws, err := sh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	sh.serveConnection(ws, claims.ID)
}

func (sh *SocketHandler) serveConnection(ws *websocket.Conn, userID uint) {
	client := &hub.Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   ws,
	}

	sh.hub.Register(client)
	if err := sh.presenceService.Bind(userID, client.ID); err != nil {
		log.Printf("Error binding presence for user %v: %v", userID, err)
	}
	sh.sendOnlineUsers(client)

	defer func() {
		sh.hub.Unregister(client)
		if err := sh.presenceService.Unbind(userID, client.ID); err != nil {
			log.Printf("Error unbinding presence for user %v: %v", userID, err)
		}
		if err := ws.Close(); err != nil {
			log.Printf("Error closing connection %v: %v", client.ID, err)
		}
	}()

	for {
		var event socket.SocketEvent
		if err := ws.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading from connection %v: %v", client.ID, err)
			}
			return
		}
		sh.handleEvent(client, event)
	}
}

// handleEvent routes one inbound event. A malformed or unauthorized event is
// answered with an error event on this connection only and never propagates.
func (sh *SocketHandler) handleEvent(client *hub.Client, event socket.SocketEvent) {
	switch event.Event {
	case enums.SOCKET_EVENT_SEND_MESSAGE:
		sh.handleSendMessage(client, event.Payload)
	case enums.SOCKET_EVENT_SEEN_MESSAGE:
		sh.handleSeenMessage(client, event.Payload)
	case enums.SOCKET_EVENT_IS_TYPING:
		sh.handleIsTyping(client, event.Payload)
	case enums.SOCKET_EVENT_JOIN_CONVERSATION:
		sh.handleJoinConversation(client, event.Payload)
	case enums.SOCKET_EVENT_LEAVE_CONVERSATION:
		sh.handleLeaveConversation(client, event.Payload)
	default:
		sh.sendError(client, errs.InvalidOperation("unknown event: "+event.Event))
	}
}

func (sh *SocketHandler) handleSendMessage(client *hub.Client, payload json.RawMessage) {
	var messagePayload socket.SendMessagePayload
	if err := json.Unmarshal(payload, &messagePayload); err != nil {
		sh.sendError(client, errs.ErrInvalidRequestBody)
		return
	}
	if _, err := sh.chatService.SendMessage(client.UserID, &messagePayload); err != nil {
		sh.sendError(client, err)
	}
}

func (sh *SocketHandler) handleSeenMessage(client *hub.Client, payload json.RawMessage) {
	var seenPayload socket.SeenMessagePayload
	if err := json.Unmarshal(payload, &seenPayload); err != nil {
		sh.sendError(client, errs.ErrInvalidRequestBody)
		return
	}
	if err := sh.chatService.MarkRead(seenPayload.ConversationID, client.UserID); err != nil {
		sh.sendError(client, err)
	}
}

func (sh *SocketHandler) handleIsTyping(client *hub.Client, payload json.RawMessage) {
	var typingPayload socket.IsTypingPayload
	if err := json.Unmarshal(payload, &typingPayload); err != nil {
		sh.sendError(client, errs.ErrInvalidRequestBody)
		return
	}
	if err := sh.typingService.SetTyping(typingPayload.ConversationID, client.UserID, typingPayload.IsTyping); err != nil {
		sh.sendError(client, err)
	}
}

// handleJoinConversation gates room membership on participation. Joining a
// room only routes live events; history access is authorized separately by
// the message log.
func (sh *SocketHandler) handleJoinConversation(client *hub.Client, payload json.RawMessage) {
	var joinPayload socket.JoinConversationPayload
	if err := json.Unmarshal(payload, &joinPayload); err != nil {
		sh.sendError(client, errs.ErrInvalidRequestBody)
		return
	}
	participant, err := sh.chatService.CheckParticipant(joinPayload.ConversationID, client.UserID)
	if err != nil {
		sh.sendError(client, err)
		return
	}
	if !participant {
		sh.sendError(client, errs.ErrNotParticipant)
		return
	}
	sh.hub.JoinRoom(joinPayload.ConversationID, client)
}

func (sh *SocketHandler) handleLeaveConversation(client *hub.Client, payload json.RawMessage) {
	var leavePayload socket.JoinConversationPayload
	if err := json.Unmarshal(payload, &leavePayload); err != nil {
		sh.sendError(client, errs.ErrInvalidRequestBody)
		return
	}
	sh.hub.LeaveRoom(leavePayload.ConversationID, client)
}

func (sh *SocketHandler) sendOnlineUsers(client *hub.Client) {
	onlineIDs, err := sh.presenceService.OnlineUserIDs()
	if err != nil {
		log.Printf("Error loading online users for connection %v: %v", client.ID, err)
		return
	}
	payload := socket.OnlineUsersPayload{UserIDs: onlineIDs}
	if err := sh.hub.Send(client, enums.SOCKET_EVENT_ONLINE_USERS, payload); err != nil {
		log.Printf("Error sending online users to connection %v: %v", client.ID, err)
	}
}

func (sh *SocketHandler) sendError(client *hub.Client, err error) {
	payload := socket.ErrorPayload{
		Kind:    string(errs.KindOf(err)),
		Message: err.Error(),
	}
	if sendErr := sh.hub.Send(client, enums.SOCKET_EVENT_ERROR, payload); sendErr != nil {
		log.Printf("Error sending error event to connection %v: %v", client.ID, sendErr)
	}
}
