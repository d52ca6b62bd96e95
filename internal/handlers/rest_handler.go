package handlers

import (
	"net/http"
	"strconv"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/msgs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	chatService     *services.ChatService
	presenceService *services.PresenceService
}

func NewRestHandler(
	chatService *services.ChatService,
	presenceService *services.PresenceService,
) *RestHandler {
	return &RestHandler{
		chatService:     chatService,
		presenceService: presenceService,
	}
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidOperation:
		return http.StatusBadRequest
	case errs.KindAccessDenied:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(statusForKind(errs.KindOf(err)), models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  models.ErrorStrings(err),
	})
}

func ok(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    data,
	})
}

type createConversationRequest struct {
	UserID uint `json:"user_id"`
}

// CreateOrGetConversation resolves the caller's conversation with another
// user, creating it on first contact.
func (rh *RestHandler) CreateOrGetConversation(ctx *gin.Context) {
	var body createConversationRequest
	if err := ctx.BindJSON(&body); err != nil {
		abortWithError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	conversation, err := rh.chatService.GetOrCreateConversation(authenticatedUserID(ctx), body.UserID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ok(ctx, conversation)
}

func (rh *RestHandler) GetUserConversations(ctx *gin.Context) {
	conversations, err := rh.chatService.GetUserConversations(authenticatedUserID(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ok(ctx, conversations)
}

func (rh *RestHandler) GetMessages(ctx *gin.Context) {
	conversationID, err := pathID(ctx, "id")
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))

	messages, svcErr := rh.chatService.GetMessages(conversationID, authenticatedUserID(ctx), page, size)
	if svcErr != nil {
		abortWithError(ctx, svcErr)
		return
	}
	ok(ctx, messages)
}

func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	conversationID, err := pathID(ctx, "id")
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var payload socket.SendMessagePayload
	if err := ctx.BindJSON(&payload); err != nil {
		abortWithError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	payload.ConversationID = conversationID

	message, svcErr := rh.chatService.SendMessage(authenticatedUserID(ctx), &payload)
	if svcErr != nil {
		abortWithError(ctx, svcErr)
		return
	}
	ok(ctx, message)
}

func (rh *RestHandler) MarkRead(ctx *gin.Context) {
	conversationID, err := pathID(ctx, "id")
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if svcErr := rh.chatService.MarkRead(conversationID, authenticatedUserID(ctx)); svcErr != nil {
		abortWithError(ctx, svcErr)
		return
	}
	ok(ctx, nil)
}

func (rh *RestHandler) DeleteMessage(ctx *gin.Context) {
	messageID, err := pathID(ctx, "id")
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if svcErr := rh.chatService.DeleteMessage(messageID, authenticatedUserID(ctx)); svcErr != nil {
		abortWithError(ctx, svcErr)
		return
	}
	ok(ctx, nil)
}

func (rh *RestHandler) SearchMessages(ctx *gin.Context) {
	term := ctx.Query("q")
	var conversationID uint
	if raw := ctx.Query("conversation_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(ctx, errs.ErrInvalidParams)
			return
		}
		conversationID = uint(parsed)
	}

	results, err := rh.chatService.SearchMessages(authenticatedUserID(ctx), term, conversationID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ok(ctx, results)
}

func (rh *RestHandler) GetPresence(ctx *gin.Context) {
	userID, err := pathID(ctx, "id")
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	presence, svcErr := rh.presenceService.GetPresence(userID)
	if svcErr != nil {
		abortWithError(ctx, svcErr)
		return
	}
	ok(ctx, presence)
}

func pathID(ctx *gin.Context, name string) (uint, error) {
	parsed, err := strconv.Atoi(ctx.Param(name))
	if err != nil || parsed < 1 {
		return 0, errs.ErrInvalidParams
	}
	return uint(parsed), nil
}
