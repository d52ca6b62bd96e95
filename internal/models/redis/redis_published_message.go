package redis

import "encoding/json"

const REDIS_CHANNEL_CHAT = "chat_events"

// RedisPublishedMessage is the fan-out envelope. Exactly one routing field is
// meaningful per event: ConversationID targets a conversation channel (with an
// optional excluded originator), TargetUserID targets a personal channel, and
// Broadcast reaches every registered connection on every instance.
type RedisPublishedMessage struct {
	Event          string          `json:"event"`
	ConversationID uint            `json:"conversation_id,omitempty"`
	TargetUserID   uint            `json:"target_user_id,omitempty"`
	ExcludeUserID  uint            `json:"exclude_user_id,omitempty"`
	Broadcast      bool            `json:"broadcast,omitempty"`
	Payload        json.RawMessage `json:"payload"`
}
