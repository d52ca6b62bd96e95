package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAccessDenied, KindOf(ErrNotParticipant))
	assert.Equal(t, KindNotFound, KindOf(ErrConversationNotFound))
	assert.Equal(t, KindInvalidOperation, KindOf(ErrSelfConversation))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while sending: %w", ErrNotParticipant)
	assert.Equal(t, KindAccessDenied, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindAccessDenied))
	assert.False(t, IsKind(wrapped, KindNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("user directory unreachable", cause)

	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "user directory unreachable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := NotFound("message not found")
	assert.Equal(t, "message not found", err.Error())
}
