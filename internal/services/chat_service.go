package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/enums"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/interfaces"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/metrics"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/validators"
)

const searchResultLimit = 50

type ChatService struct {
	chatStore interfaces.ChatStore
	directory interfaces.Directory
	publisher interfaces.EventPublisher
}

func NewChatService(
	chatStore interfaces.ChatStore,
	directory interfaces.Directory,
	publisher interfaces.EventPublisher,
) *ChatService {
	return &ChatService{
		chatStore: chatStore,
		directory: directory,
		publisher: publisher,
	}
}

// GetOrCreateConversation resolves or lazily creates the single conversation
// between the caller and another user.
func (cs *ChatService) GetOrCreateConversation(userID, otherUserID uint) (*models.ConversationResponse, error) {
	if userID == otherUserID {
		return nil, errs.ErrSelfConversation
	}
	if otherUserID == 0 {
		return nil, errs.ErrInvalidParams
	}

	conversation, err := cs.chatStore.GetOrCreateConversation(userID, otherUserID)
	if err != nil {
		return nil, err
	}

	lastMessage, err := cs.chatStore.GetConversationLastMessage(conversation.ID)
	if err != nil {
		return nil, err
	}

	peer := cs.resolveUser(conversation.OtherParticipant(userID))
	response := conversation.ToConversationResponse(peer, lastMessage, conversation.UnreadFor(userID))
	return &response, nil
}

// GetUserConversations lists the caller's conversations annotated with the
// other participant's display data, last-message preview and the caller's own
// unread count, most recently active first.
func (cs *ChatService) GetUserConversations(userID uint) (*models.ConversationListResponse, error) {
	conversations, err := cs.chatStore.GetUserConversations(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		conversation := &conversations[i]
		lastMessage, err := cs.chatStore.GetConversationLastMessage(conversation.ID)
		if err != nil {
			return nil, err
		}
		peer := cs.resolveUser(conversation.OtherParticipant(userID))
		responses = append(responses, conversation.ToConversationResponse(peer, lastMessage, conversation.UnreadFor(userID)))
	}

	return &models.ConversationListResponse{
		Conversations: responses,
		Total:         len(responses),
	}, nil
}

// SendMessage validates and durably appends a message, then fans out the
// resulting events. Fan-out is strictly post-commit: a failed append publishes
// nothing, and a failed publish never undoes the append.
func (cs *ChatService) SendMessage(senderID uint, payload *socket.SendMessagePayload) (*models.MessageResponse, error) {
	conversation, err := cs.chatStore.GetConversationByID(payload.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, errs.ErrNotParticipant
	}

	receiverID := payload.ReceiverID
	if receiverID == 0 {
		receiverID = conversation.OtherParticipant(senderID)
	}
	if conversation.OtherParticipant(senderID) != receiverID {
		return nil, errs.ErrReceiverMismatch
	}

	if err := validators.ValidateMessagePayload(payload); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Type:           payload.Type,
		Content:        strings.TrimSpace(payload.Content),
		FileURL:        payload.FileURL,
		FileName:       payload.FileName,
		FileSize:       payload.FileSize,
	}

	saved, err := cs.chatStore.SaveMessage(conversation, message)
	if err != nil {
		return nil, err
	}
	metrics.MessagesSent.WithLabelValues(saved.Type).Inc()

	sender := cs.resolveUser(senderID)
	response := saved.ToMessageResponse(sender)

	cs.fanOutNewMessage(conversation, saved, sender, &response)
	return &response, nil
}

func (cs *ChatService) fanOutNewMessage(conversation *models.Conversation, message *models.Message, sender *models.UserResponse, response *models.MessageResponse) {
	if err := cs.publisher.PublishToConversation(conversation.ID, 0, enums.SOCKET_EVENT_NEW_MESSAGE, response); err != nil {
		log.Printf("Error publishing new message event for conversation %v: %v", conversation.ID, err)
	}

	notification := socket.MessageNotificationPayload{
		ConversationID: conversation.ID,
		SenderID:       message.SenderID,
		SenderName:     fmt.Sprintf("%s %s", sender.FirstName, sender.LastName),
		Preview:        message.Preview(),
	}
	if err := cs.publisher.PublishToUser(message.ReceiverID, enums.SOCKET_EVENT_MESSAGE_NOTIFICATION, notification); err != nil {
		log.Printf("Error publishing message notification for user %v: %v", message.ReceiverID, err)
	}
}

// GetMessages pages the conversation history for a participant. Pages walk
// backward from now; each returned slice is oldest first.
func (cs *ChatService) GetMessages(conversationID, userID uint, page, size int) (*models.MessageListResponse, error) {
	conversation, err := cs.chatStore.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errs.ErrNotParticipant
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	messages, hasMore, err := cs.chatStore.GetMessages(conversationID, page, size)
	if err != nil {
		return nil, err
	}

	// Only two possible senders in a conversation; resolve each once.
	senders := map[uint]*models.UserResponse{
		conversation.User1ID: cs.resolveUser(conversation.User1ID),
		conversation.User2ID: cs.resolveUser(conversation.User2ID),
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToMessageResponse(senders[messages[i].SenderID]))
	}

	return &models.MessageListResponse{
		Messages: responses,
		Page:     page,
		Size:     size,
		HasMore:  hasMore,
	}, nil
}

// MarkRead marks everything addressed to the reader as read, zeroes their
// unread counter, and lets the other side's open view update its receipts.
func (cs *ChatService) MarkRead(conversationID, readerID uint) error {
	conversation, err := cs.chatStore.GetConversationByID(conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(readerID) {
		return errs.ErrNotParticipant
	}

	if err := cs.chatStore.MarkConversationRead(conversation, readerID); err != nil {
		return err
	}

	payload := socket.MessagesReadPayload{
		ConversationID: conversationID,
		ReadBy:         readerID,
	}
	if err := cs.publisher.PublishToConversation(conversationID, 0, enums.SOCKET_EVENT_MESSAGES_READ, payload); err != nil {
		log.Printf("Error publishing messages read event for conversation %v: %v", conversationID, err)
	}
	return nil
}

// DeleteMessage redacts a message's content. Sender-only; read state and
// timestamps survive so ordering and receipts are unaffected.
func (cs *ChatService) DeleteMessage(messageID, userID uint) error {
	message, err := cs.chatStore.GetMessageByID(messageID)
	if err != nil {
		return err
	}
	if message.SenderID != userID {
		return errs.ErrNotMessageSender
	}
	return cs.chatStore.RedactMessage(messageID)
}

// SearchMessages matches live content in the caller's conversations,
// optionally narrowed to one conversation, newest first, capped.
func (cs *ChatService) SearchMessages(userID uint, term string, conversationID uint) ([]models.MessageResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errs.ErrEmptySearchTerm
	}
	if conversationID != 0 {
		conversation, err := cs.chatStore.GetConversationByID(conversationID)
		if err != nil {
			return nil, err
		}
		if !conversation.HasParticipant(userID) {
			return nil, errs.ErrNotParticipant
		}
	}

	messages, err := cs.chatStore.SearchMessages(userID, strings.TrimSpace(term), conversationID, searchResultLimit)
	if err != nil {
		return nil, err
	}

	senders := make(map[uint]*models.UserResponse)
	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		senderID := messages[i].SenderID
		if _, ok := senders[senderID]; !ok {
			senders[senderID] = cs.resolveUser(senderID)
		}
		responses = append(responses, messages[i].ToMessageResponse(senders[senderID]))
	}
	return responses, nil
}

// CheckParticipant reports whether the user belongs to the conversation; used
// by the socket layer to gate room joins.
func (cs *ChatService) CheckParticipant(conversationID, userID uint) (bool, error) {
	conversation, err := cs.chatStore.GetConversationByID(conversationID)
	if err != nil {
		return false, err
	}
	return conversation.HasParticipant(userID), nil
}

// resolveUser degrades to a raw-id rendering when the directory fails; a
// missing display name must never block a messaging operation.
func (cs *ChatService) resolveUser(userID uint) *models.UserResponse {
	user, err := cs.directory.GetUserByID(userID)
	if err != nil {
		log.Printf("Directory lookup failed for user %v: %v", userID, err)
		return models.FallbackUserResponse(userID)
	}
	return user.ToUserResponse()
}
