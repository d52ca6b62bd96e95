package services

import (
	"testing"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/enums"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTypingFixture(t *testing.T) (*TypingService, *fakeTypingStore, *fakeChatStore, *fakePublisher) {
	t.Helper()
	typingStore := newFakeTypingStore()
	chatStore := newFakeChatStore()
	publisher := &fakePublisher{}
	_, err := chatStore.GetOrCreateConversation(1, 2)
	require.NoError(t, err)
	return NewTypingService(typingStore, chatStore, publisher), typingStore, chatStore, publisher
}

func TestSetTypingPublishesExcludingOriginator(t *testing.T) {
	service, _, _, publisher := newTypingFixture(t)

	require.NoError(t, service.SetTyping(1, 1, true))

	events := publisher.byEvent(enums.SOCKET_EVENT_USER_TYPING)
	require.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].conversationID)
	assert.Equal(t, uint(1), events[0].excludeUserID)
	payload := events[0].payload.(socket.IsTypingPayload)
	assert.True(t, payload.IsTyping)
}

func TestSetTypingRejectsNonParticipant(t *testing.T) {
	service, _, _, publisher := newTypingFixture(t)

	err := service.SetTyping(1, 9, true)
	require.Error(t, err)
	assert.Equal(t, errs.KindAccessDenied, errs.KindOf(err))
	assert.Empty(t, publisher.events)
}

func TestIsActiveFreshIndicator(t *testing.T) {
	service, _, _, _ := newTypingFixture(t)

	require.NoError(t, service.SetTyping(1, 1, true))
	active, err := service.IsActive(1, 1)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestIsActiveExpiresWithoutExplicitStop(t *testing.T) {
	service, typingStore, _, _ := newTypingFixture(t)

	require.NoError(t, service.SetTyping(1, 1, true))
	// Age the stored row past the TTL; no stop signal is ever sent.
	indicator := typingStore.indicators[typingKey{1, 1}]
	indicator.UpdatedAt = time.Now().Add(-TypingTTL - time.Second)

	active, err := service.IsActive(1, 1)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActiveExplicitStop(t *testing.T) {
	service, _, _, _ := newTypingFixture(t)

	require.NoError(t, service.SetTyping(1, 1, true))
	require.NoError(t, service.SetTyping(1, 1, false))

	active, err := service.IsActive(1, 1)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActiveNoIndicator(t *testing.T) {
	service, _, _, _ := newTypingFixture(t)

	active, err := service.IsActive(1, 2)
	require.NoError(t, err)
	assert.False(t, active)
}
