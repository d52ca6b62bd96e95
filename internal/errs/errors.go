package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindAccessDenied     Kind = "ACCESS_DENIED"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindUnavailable      Kind = "UNAVAILABLE"
	KindUnknown          Kind = "UNKNOWN"
)

// Error carries a machine-readable kind alongside the message so handlers
// can map failures to transport responses without string matching.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func InvalidOperation(message string) error {
	return New(KindInvalidOperation, message)
}

func AccessDenied(message string) error {
	return New(KindAccessDenied, message)
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func Unavailable(message string, cause error) error {
	return Wrap(KindUnavailable, message, cause)
}

// KindOf extracts the kind from any error in the chain, KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

var (
	ErrUnauthorized         = New(KindAccessDenied, "unauthorized")
	ErrNotParticipant       = New(KindAccessDenied, "user is not a participant of this conversation")
	ErrNotMessageSender     = New(KindAccessDenied, "only the sender may delete a message")
	ErrSelfConversation     = New(KindInvalidOperation, "cannot start a conversation with yourself")
	ErrEmptyMessage         = New(KindInvalidOperation, "message content must not be empty")
	ErrInvalidMessageType   = New(KindInvalidOperation, "unknown message type")
	ErrInvalidRequestBody   = New(KindInvalidOperation, "invalid request body")
	ErrInvalidParams        = New(KindInvalidOperation, "invalid params")
	ErrEmptySearchTerm      = New(KindInvalidOperation, "search term must not be empty")
	ErrReceiverMismatch     = New(KindInvalidOperation, "receiver is not the other participant of this conversation")
	ErrConversationNotFound = New(KindNotFound, "conversation not found")
	ErrMessageNotFound      = New(KindNotFound, "message not found")
	ErrUserNotFound         = New(KindNotFound, "user not found")
)
