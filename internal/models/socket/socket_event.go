package socket

import (
	"encoding/json"
)

// SocketEvent is the envelope for everything a client sends or receives over
// the live connection.
type SocketEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type SendMessagePayload struct {
	ConversationID uint    `json:"conversation_id"`
	ReceiverID     uint    `json:"receiver_id"`
	Type           string  `json:"type"`
	Content        string  `json:"content"`
	FileURL        *string `json:"file_url"`
	FileName       *string `json:"file_name"`
	FileSize       *int64  `json:"file_size"`
}

type SeenMessagePayload struct {
	ConversationID uint `json:"conversation_id"`
}

type IsTypingPayload struct {
	ConversationID uint `json:"conversation_id"`
	UserID         uint `json:"user_id"`
	IsTyping       bool `json:"is_typing"`
}

type JoinConversationPayload struct {
	ConversationID uint `json:"conversation_id"`
}

type MessageNotificationPayload struct {
	ConversationID uint   `json:"conversation_id"`
	SenderID       uint   `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	Preview        string `json:"preview"`
}

type MessagesReadPayload struct {
	ConversationID uint `json:"conversation_id"`
	ReadBy         uint `json:"read_by"`
}

type UserOfflinePayload struct {
	UserID uint `json:"user_id"`
}

type OnlineUsersPayload struct {
	UserIDs []uint `json:"user_ids"`
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
