package services

import (
	"sort"
	"strings"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
)

// fakeChatStore mirrors the gorm repository's semantics in memory so the
// service layer can be exercised without a database.
type fakeChatStore struct {
	conversations map[uint]*models.Conversation
	messages      map[uint]*models.Message
	nextConvID    uint
	nextMsgID     uint
	clock         time.Time
	failSave      bool
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		conversations: make(map[uint]*models.Conversation),
		messages:      make(map[uint]*models.Message),
		clock:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeChatStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeChatStore) GetOrCreateConversation(userA, userB uint) (*models.Conversation, error) {
	user1, user2 := models.NormalizePair(userA, userB)
	for _, conversation := range f.conversations {
		if conversation.User1ID == user1 && conversation.User2ID == user2 {
			return conversation, nil
		}
	}
	f.nextConvID++
	conversation := &models.Conversation{
		User1ID: user1,
		User2ID: user2,
	}
	conversation.ID = f.nextConvID
	conversation.CreatedAt = f.tick()
	f.conversations[conversation.ID] = conversation
	return conversation, nil
}

func (f *fakeChatStore) GetConversationByID(conversationID uint) (*models.Conversation, error) {
	conversation, ok := f.conversations[conversationID]
	if !ok {
		return nil, errs.ErrConversationNotFound
	}
	return conversation, nil
}

func (f *fakeChatStore) GetUserConversations(userID uint) ([]models.Conversation, error) {
	var result []models.Conversation
	for _, conversation := range f.conversations {
		if conversation.HasParticipant(userID) {
			result = append(result, *conversation)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		left, right := result[i], result[j]
		switch {
		case left.LastMessageAt != nil && right.LastMessageAt != nil:
			return left.LastMessageAt.After(*right.LastMessageAt)
		case left.LastMessageAt != nil:
			return true
		case right.LastMessageAt != nil:
			return false
		default:
			return left.CreatedAt.After(right.CreatedAt)
		}
	})
	return result, nil
}

func (f *fakeChatStore) SaveMessage(conversation *models.Conversation, message *models.Message) (*models.Message, error) {
	if f.failSave {
		return nil, errs.Unavailable("store unreachable", nil)
	}
	f.nextMsgID++
	message.ID = f.nextMsgID
	message.CreatedAt = f.tick()
	f.messages[message.ID] = message

	stored := f.conversations[conversation.ID]
	stored.LastMessageID = &message.ID
	at := message.CreatedAt
	stored.LastMessageAt = &at
	if stored.User1ID == message.ReceiverID {
		stored.User1Unread++
	} else {
		stored.User2Unread++
	}
	return message, nil
}

func (f *fakeChatStore) GetConversationLastMessage(conversationID uint) (*models.Message, error) {
	var last *models.Message
	for _, message := range f.messages {
		if message.ConversationID != conversationID {
			continue
		}
		if last == nil || message.ID > last.ID {
			last = message
		}
	}
	return last, nil
}

func (f *fakeChatStore) GetMessages(conversationID uint, page, size int) ([]models.Message, bool, error) {
	var all []models.Message
	for _, message := range f.messages {
		if message.ConversationID == conversationID {
			all = append(all, *message)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	offset := (page - 1) * size
	if offset >= len(all) {
		return nil, false, nil
	}
	window := all[offset:]
	hasMore := len(window) > size
	if hasMore {
		window = window[:size]
	}
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}
	return window, hasMore, nil
}

func (f *fakeChatStore) MarkConversationRead(conversation *models.Conversation, readerID uint) error {
	now := f.tick()
	for _, message := range f.messages {
		if message.ConversationID == conversation.ID && message.ReceiverID == readerID && message.ReadAt == nil {
			at := now
			message.ReadAt = &at
		}
	}
	stored := f.conversations[conversation.ID]
	if stored.User1ID == readerID {
		stored.User1Unread = 0
	} else {
		stored.User2Unread = 0
	}
	return nil
}

func (f *fakeChatStore) GetMessageByID(messageID uint) (*models.Message, error) {
	message, ok := f.messages[messageID]
	if !ok {
		return nil, errs.ErrMessageNotFound
	}
	return message, nil
}

func (f *fakeChatStore) RedactMessage(messageID uint) error {
	message, ok := f.messages[messageID]
	if !ok {
		return errs.ErrMessageNotFound
	}
	message.Content = ""
	message.Redacted = true
	return nil
}

func (f *fakeChatStore) SearchMessages(userID uint, term string, conversationID uint, limit int) ([]models.Message, error) {
	lowered := strings.ToLower(term)
	var result []models.Message
	for _, message := range f.messages {
		conversation := f.conversations[message.ConversationID]
		if conversation == nil || !conversation.HasParticipant(userID) {
			continue
		}
		if conversationID != 0 && message.ConversationID != conversationID {
			continue
		}
		if message.Redacted || !strings.Contains(strings.ToLower(message.Content), lowered) {
			continue
		}
		result = append(result, *message)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeDirectory struct {
	users map[uint]*models.User
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[uint]*models.User)}
}

func (f *fakeDirectory) add(id uint, firstName, lastName string) {
	user := &models.User{FirstName: firstName, LastName: lastName}
	user.ID = id
	f.users[id] = user
}

func (f *fakeDirectory) GetUserByID(userID uint) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}

type publishedEvent struct {
	event          string
	conversationID uint
	targetUserID   uint
	excludeUserID  uint
	broadcast      bool
	payload        any
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) PublishToConversation(conversationID, excludeUserID uint, event string, payload any) error {
	f.events = append(f.events, publishedEvent{
		event:          event,
		conversationID: conversationID,
		excludeUserID:  excludeUserID,
		payload:        payload,
	})
	return nil
}

func (f *fakePublisher) PublishToUser(userID uint, event string, payload any) error {
	f.events = append(f.events, publishedEvent{
		event:        event,
		targetUserID: userID,
		payload:      payload,
	})
	return nil
}

func (f *fakePublisher) Broadcast(event string, payload any) error {
	f.events = append(f.events, publishedEvent{
		event:     event,
		broadcast: true,
		payload:   payload,
	})
	return nil
}

func (f *fakePublisher) byEvent(event string) []publishedEvent {
	var matches []publishedEvent
	for _, published := range f.events {
		if published.event == event {
			matches = append(matches, published)
		}
	}
	return matches
}

type fakePresenceStore struct {
	presences map[uint]*models.Presence
	gets      int
}

func newFakePresenceStore() *fakePresenceStore {
	return &fakePresenceStore{presences: make(map[uint]*models.Presence)}
}

func (f *fakePresenceStore) Bind(userID uint, connectionID string) error {
	now := time.Now()
	connID := connectionID
	f.presences[userID] = &models.Presence{
		UserID:       userID,
		Online:       true,
		LastSeen:     &now,
		ConnectionID: &connID,
	}
	return nil
}

func (f *fakePresenceStore) Unbind(userID uint, connectionID string) (bool, error) {
	presence, ok := f.presences[userID]
	if !ok || presence.ConnectionID == nil || *presence.ConnectionID != connectionID {
		return false, nil
	}
	now := time.Now()
	presence.Online = false
	presence.LastSeen = &now
	presence.ConnectionID = nil
	return true, nil
}

func (f *fakePresenceStore) Get(userID uint) (*models.Presence, error) {
	f.gets++
	if presence, ok := f.presences[userID]; ok {
		return presence, nil
	}
	return &models.Presence{UserID: userID}, nil
}

func (f *fakePresenceStore) Snapshot(userIDs []uint) ([]models.Presence, error) {
	var result []models.Presence
	for _, id := range userIDs {
		if presence, ok := f.presences[id]; ok {
			result = append(result, *presence)
		}
	}
	return result, nil
}

func (f *fakePresenceStore) OnlineUserIDs() ([]uint, error) {
	var ids []uint
	for id, presence := range f.presences {
		if presence.Online {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type typingKey struct {
	conversationID uint
	userID         uint
}

type fakeTypingStore struct {
	indicators map[typingKey]*models.TypingIndicator
}

func newFakeTypingStore() *fakeTypingStore {
	return &fakeTypingStore{indicators: make(map[typingKey]*models.TypingIndicator)}
}

func (f *fakeTypingStore) Upsert(conversationID, userID uint, isTyping bool) error {
	f.indicators[typingKey{conversationID, userID}] = &models.TypingIndicator{
		ConversationID: conversationID,
		UserID:         userID,
		IsTyping:       isTyping,
		UpdatedAt:      time.Now(),
	}
	return nil
}

func (f *fakeTypingStore) Get(conversationID, userID uint) (*models.TypingIndicator, error) {
	indicator, ok := f.indicators[typingKey{conversationID, userID}]
	if !ok {
		return nil, nil
	}
	return indicator, nil
}
