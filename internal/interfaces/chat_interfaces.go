package interfaces

import (
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
)

// ChatStore is the persistence surface the chat service needs. The gorm
// repository satisfies it in production; tests substitute an in-memory fake.
type ChatStore interface {
	GetOrCreateConversation(userA, userB uint) (*models.Conversation, error)
	GetConversationByID(conversationID uint) (*models.Conversation, error)
	GetUserConversations(userID uint) ([]models.Conversation, error)
	SaveMessage(conversation *models.Conversation, message *models.Message) (*models.Message, error)
	GetConversationLastMessage(conversationID uint) (*models.Message, error)
	GetMessages(conversationID uint, page, size int) ([]models.Message, bool, error)
	MarkConversationRead(conversation *models.Conversation, readerID uint) error
	GetMessageByID(messageID uint) (*models.Message, error)
	RedactMessage(messageID uint) error
	SearchMessages(userID uint, term string, conversationID uint, limit int) ([]models.Message, error)
}

type PresenceStore interface {
	Bind(userID uint, connectionID string) error
	Unbind(userID uint, connectionID string) (bool, error)
	Get(userID uint) (*models.Presence, error)
	Snapshot(userIDs []uint) ([]models.Presence, error)
	OnlineUserIDs() ([]uint, error)
}

type TypingStore interface {
	Upsert(conversationID, userID uint, isTyping bool) error
	Get(conversationID, userID uint) (*models.TypingIndicator, error)
}

// Directory resolves a user id to display metadata. Lookup failures must
// degrade to a raw-id rendering, never block a messaging operation.
type Directory interface {
	GetUserByID(userID uint) (*models.User, error)
}

// EventPublisher hands domain events to the fan-out layer. Delivery is
// best-effort: targets without a live connection are silently skipped.
type EventPublisher interface {
	PublishToConversation(conversationID, excludeUserID uint, event string, payload any) error
	PublishToUser(userID uint, event string, payload any) error
	Broadcast(event string, payload any) error
}
