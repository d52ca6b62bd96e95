package models

import (
	"gorm.io/gorm"
)

// User is the directory row for a marketplace account. Account management
// itself lives in another service; messaging only reads display metadata.
type User struct {
	gorm.Model
	FirstName    string  `gorm:"not null" json:"first_name"`
	LastName     string  `gorm:"not null" json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
	Email        string  `gorm:"unique;not null" json:"email"`
}

func (user *User) ToUserResponse() *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfilePhoto: user.ProfilePhoto,
	}
}
