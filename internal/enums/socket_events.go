package enums

// Inbound socket events
const (
	SOCKET_EVENT_SEND_MESSAGE       = "send_message"
	SOCKET_EVENT_SEEN_MESSAGE       = "seen_message"
	SOCKET_EVENT_IS_TYPING          = "is_typing"
	SOCKET_EVENT_JOIN_CONVERSATION  = "join_conversation"
	SOCKET_EVENT_LEAVE_CONVERSATION = "leave_conversation"
)

// Outbound socket events
const (
	SOCKET_EVENT_NEW_MESSAGE          = "new_message"
	SOCKET_EVENT_MESSAGE_NOTIFICATION = "message_notification"
	SOCKET_EVENT_MESSAGES_READ        = "messages_read"
	SOCKET_EVENT_USER_TYPING          = "user_typing"
	SOCKET_EVENT_USER_OFFLINE         = "user_offline"
	SOCKET_EVENT_ONLINE_USERS         = "online_users"
	SOCKET_EVENT_ERROR                = "error"
)

// Message content types
const (
	MESSAGE_TYPE_TEXT  = "text"
	MESSAGE_TYPE_FILE  = "file"
	MESSAGE_TYPE_IMAGE = "image"
)
