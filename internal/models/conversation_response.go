package models

import "time"

type ConversationResponse struct {
	ID            uint          `json:"id"`
	Peer          *UserResponse `json:"peer"`
	LastMessage   string        `json:"last_message"`
	Unread        int           `json:"unread"`
	CreatedAt     time.Time     `json:"created_at"`
	LastMessageAt *time.Time    `json:"last_message_at"`
}
