package services

import (
	"log"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/enums"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/interfaces"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"
)

// TypingTTL is the window after which a typing indicator counts as stale. A
// client that stops refreshing auto-expires without ever sending a stop.
const TypingTTL = 10 * time.Second

type TypingService struct {
	typingStore interfaces.TypingStore
	chatStore   interfaces.ChatStore
	publisher   interfaces.EventPublisher
}

func NewTypingService(
	typingStore interfaces.TypingStore,
	chatStore interfaces.ChatStore,
	publisher interfaces.EventPublisher,
) *TypingService {
	return &TypingService{
		typingStore: typingStore,
		chatStore:   chatStore,
		publisher:   publisher,
	}
}

// SetTyping upserts the indicator and tells everyone else in the conversation.
// The originator is excluded from the fan-out.
func (ts *TypingService) SetTyping(conversationID, userID uint, isTyping bool) error {
	conversation, err := ts.chatStore.GetConversationByID(conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return errs.ErrNotParticipant
	}

	if err := ts.typingStore.Upsert(conversationID, userID, isTyping); err != nil {
		return err
	}

	payload := socket.IsTypingPayload{
		ConversationID: conversationID,
		UserID:         userID,
		IsTyping:       isTyping,
	}
	if err := ts.publisher.PublishToConversation(conversationID, userID, enums.SOCKET_EVENT_USER_TYPING, payload); err != nil {
		log.Printf("Error publishing typing event for conversation %v: %v", conversationID, err)
	}
	return nil
}

// IsActive treats any indicator older than the TTL as false regardless of its
// stored flag.
func (ts *TypingService) IsActive(conversationID, userID uint) (bool, error) {
	indicator, err := ts.typingStore.Get(conversationID, userID)
	if err != nil {
		return false, err
	}
	if indicator == nil {
		return false, nil
	}
	return indicator.ActiveAt(time.Now(), TypingTTL), nil
}
