package models

import "time"

type MessageResponse struct {
	ID             uint          `json:"id"`
	ConversationID uint          `json:"conversation_id"`
	SenderID       uint          `json:"sender_id"`
	ReceiverID     uint          `json:"receiver_id"`
	Type           string        `json:"type"`
	Content        string        `json:"content"`
	FileURL        *string       `json:"file_url"`
	FileName       *string       `json:"file_name"`
	FileSize       *int64        `json:"file_size"`
	ReadAt         *time.Time    `json:"read_at"`
	Redacted       bool          `json:"redacted"`
	CreatedAt      time.Time     `json:"created_at"`
	Sender         *UserResponse `json:"sender"`
}
