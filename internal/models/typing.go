package models

import "time"

// TypingIndicator is a liveness signal, not a durable fact: a row older than
// the TTL counts as not typing no matter what the stored flag says, so a
// client that never sends an explicit stop still expires.
type TypingIndicator struct {
	ConversationID uint      `gorm:"primaryKey;autoIncrement:false" json:"conversation_id"`
	UserID         uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	IsTyping       bool      `gorm:"not null;default:false" json:"is_typing"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (indicator *TypingIndicator) ActiveAt(now time.Time, ttl time.Duration) bool {
	if !indicator.IsTyping {
		return false
	}
	return now.Sub(indicator.UpdatedAt) <= ttl
}
