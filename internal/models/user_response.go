package models

import (
	"fmt"
	"time"
)

type UserResponse struct {
	ID           uint       `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	ProfilePhoto *string    `json:"profile_photo"`
	IsOnline     *bool      `json:"is_online,omitempty"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
}

// FallbackUserResponse stands in when the directory cannot resolve a user;
// the caller still gets a renderable participant instead of a failed request.
func FallbackUserResponse(id uint) *UserResponse {
	return &UserResponse{
		ID:        id,
		FirstName: fmt.Sprintf("User %d", id),
	}
}
