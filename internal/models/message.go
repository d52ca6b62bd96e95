package models

import (
	"time"
	"unicode/utf8"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/msgs"

	"gorm.io/gorm"
)

// Message belongs to exactly one conversation; sender and receiver are the two
// participants of that conversation at the time of send. A message is never
// physically deleted by users: redaction flips the Redacted flag and clears
// the content, preserving the row for ordering and pagination.
type Message struct {
	gorm.Model
	ConversationID uint         `gorm:"not null;index" json:"conversation_id"`
	Conversation   Conversation `json:"-"`
	SenderID       uint         `gorm:"not null" json:"sender_id"`
	ReceiverID     uint         `gorm:"not null" json:"receiver_id"`
	Type           string       `gorm:"not null;default:text" json:"type"`
	Content        string       `json:"-"`
	FileURL        *string      `json:"file_url"`
	FileName       *string      `json:"file_name"`
	FileSize       *int64       `json:"file_size"`
	ReadAt         *time.Time   `json:"read_at"`
	Redacted       bool         `gorm:"not null;default:false" json:"redacted"`
}

// DisplayContent is what clients see: the fixed deletion marker for redacted
// messages, the stored content otherwise. Redacted content never leaves the
// store through this path.
func (message *Message) DisplayContent() string {
	if message.Redacted {
		return msgs.MsgMessageDeleted
	}
	return message.Content
}

const previewLimit = 80

// Preview returns a short form of the display content for conversation lists.
// Truncation backs up to a rune boundary so the preview is always valid UTF-8.
func (message *Message) Preview() string {
	content := message.DisplayContent()
	if len(content) <= previewLimit {
		return content
	}
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}

func (message *Message) ToMessageResponse(sender *UserResponse) MessageResponse {
	return MessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		Type:           message.Type,
		Content:        message.DisplayContent(),
		FileURL:        message.FileURL,
		FileName:       message.FileName,
		FileSize:       message.FileSize,
		ReadAt:         message.ReadAt,
		Redacted:       message.Redacted,
		CreatedAt:      message.CreatedAt,
		Sender:         sender,
	}
}
