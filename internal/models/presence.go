package models

import "time"

// Presence is one row per user. ConnectionID identifies the single live
// connection of record; a new binding supersedes the previous one, and an
// unbind only takes effect when it names the connection that is still current.
type Presence struct {
	UserID       uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Online       bool       `gorm:"not null;default:false" json:"online"`
	LastSeen     *time.Time `json:"last_seen"`
	ConnectionID *string    `json:"-"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (presence *Presence) ToPresenceResponse() PresenceResponse {
	return PresenceResponse{
		UserID:   presence.UserID,
		Online:   presence.Online,
		LastSeen: presence.LastSeen,
	}
}

type PresenceResponse struct {
	UserID   uint       `json:"user_id"`
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"last_seen"`
}
