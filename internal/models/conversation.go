package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is the durable two-party channel between one unordered pair of
// users. The pair is stored canonically (User1ID < User2ID) and carries a
// unique index, so lookups are direction-independent and at most one row can
// exist per pair. One unread counter per participant slot.
type Conversation struct {
	gorm.Model
	User1ID       uint       `gorm:"not null;uniqueIndex:idx_conversation_pair,priority:1" json:"user1_id"`
	User2ID       uint       `gorm:"not null;uniqueIndex:idx_conversation_pair,priority:2" json:"user2_id"`
	User1Unread   int        `gorm:"not null;default:0" json:"user1_unread"`
	User2Unread   int        `gorm:"not null;default:0" json:"user2_unread"`
	LastMessageID *uint      `json:"last_message_id"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

// NormalizePair returns the pair in canonical storage order.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (conversation *Conversation) HasParticipant(userID uint) bool {
	return conversation.User1ID == userID || conversation.User2ID == userID
}

// OtherParticipant returns the peer of userID. The caller must have verified
// participation first.
func (conversation *Conversation) OtherParticipant(userID uint) uint {
	if conversation.User1ID == userID {
		return conversation.User2ID
	}
	return conversation.User1ID
}

func (conversation *Conversation) UnreadFor(userID uint) int {
	if conversation.User1ID == userID {
		return conversation.User1Unread
	}
	return conversation.User2Unread
}

func (conversation *Conversation) ToConversationResponse(peer *UserResponse, lastMessage *Message, unread int) ConversationResponse {
	response := ConversationResponse{
		ID:            conversation.ID,
		Peer:          peer,
		Unread:        unread,
		CreatedAt:     conversation.CreatedAt,
		LastMessageAt: conversation.LastMessageAt,
	}
	if lastMessage != nil {
		response.LastMessage = lastMessage.Preview()
	}
	return response
}
