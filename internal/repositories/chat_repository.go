package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// GetOrCreateConversation resolves the single conversation for a pair of
// users, creating it with zeroed unread counters on first contact. The pair is
// canonicalized before any lookup or insert, so both call directions hit the
// same row. Two racing first contacts are arbitrated by the unique index on
// the canonical pair: the losing insert re-reads the winner's row.
func (chr *ChatRepository) GetOrCreateConversation(userA, userB uint) (*models.Conversation, error) {
	user1, user2 := models.NormalizePair(userA, userB)

	var conversation models.Conversation
	err := chr.db.Where("user1_id = ? AND user2_id = ?", user1, user2).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Unavailable("could not look up conversation", err)
	}

	conversation = models.Conversation{User1ID: user1, User2ID: user2}
	if err := chr.db.Create(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-contact race; the row now exists.
			var existing models.Conversation
			if err := chr.db.Where("user1_id = ? AND user2_id = ?", user1, user2).First(&existing).Error; err != nil {
				return nil, errs.Unavailable("could not re-read conversation after create race", err)
			}
			return &existing, nil
		}
		return nil, errs.Unavailable("could not create conversation", err)
	}
	return &conversation, nil
}

func (chr *ChatRepository) GetConversationByID(conversationID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := chr.db.First(&conversation, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrConversationNotFound
		}
		return nil, errs.Unavailable("could not load conversation", err)
	}
	return &conversation, nil
}

// GetUserConversations returns every conversation touching the user, ordered
// by last-message time descending; conversations with no messages yet sort
// after, by creation time.
func (chr *ChatRepository) GetUserConversations(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := chr.db.
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST, created_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, errs.Unavailable("could not list conversations", err)
	}
	return conversations, nil
}

// SaveMessage appends a message and records its delivery on the owning
// conversation in one transaction: last-message pointer moves and the
// receiver's unread slot increments, or nothing is visible at all.
func (chr *ChatRepository) SaveMessage(conversation *models.Conversation, message *models.Message) (*models.Message, error) {
	unreadColumn := "user1_unread"
	if conversation.User2ID == message.ReceiverID {
		unreadColumn = "user2_unread"
	}

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Updates(map[string]interface{}{
				"last_message_id": message.ID,
				"last_message_at": message.CreatedAt,
				unreadColumn:      gorm.Expr(unreadColumn + " + 1"),
			}).Error
	})
	if transactionErr != nil {
		return nil, errs.Unavailable("could not save message", transactionErr)
	}
	return message, nil
}

func (chr *ChatRepository) GetConversationLastMessage(conversationID uint) (*models.Message, error) {
	var message models.Message
	err := chr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.Unavailable("could not load last message", err)
	}
	return &message, nil
}

// GetMessages pages backward from the newest message but returns each page in
// forward chronological order. One extra row beyond the page size is fetched
// and trimmed to compute hasMore.
func (chr *ChatRepository) GetMessages(conversationID uint, page, size int) ([]models.Message, bool, error) {
	var messages []models.Message
	offset := (page - 1) * size
	if err := chr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(size + 1).
		Find(&messages).Error; err != nil {
		return nil, false, errs.Unavailable("could not load messages", err)
	}

	hasMore := len(messages) > size
	if hasMore {
		messages = messages[:size]
	}

	// Oldest first within the page.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, hasMore, nil
}

// MarkConversationRead stamps every unread message addressed to the reader
// and zeroes the reader's unread slot in the same transaction.
func (chr *ChatRepository) MarkConversationRead(conversation *models.Conversation, readerID uint) error {
	unreadColumn := "user1_unread"
	if conversation.User2ID == readerID {
		unreadColumn = "user2_unread"
	}

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND receiver_id = ? AND read_at IS NULL", conversation.ID, readerID).
			Update("read_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversation.ID).
			Update(unreadColumn, 0).Error
	})
	if transactionErr != nil {
		return errs.Unavailable("could not mark conversation read", transactionErr)
	}
	return nil
}

func (chr *ChatRepository) GetMessageByID(messageID uint) (*models.Message, error) {
	var message models.Message
	if err := chr.db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrMessageNotFound
		}
		return nil, errs.Unavailable("could not load message", err)
	}
	return &message, nil
}

// RedactMessage clears the content and flags the row; read state and
// timestamps stay untouched so ordering and receipts survive redaction.
func (chr *ChatRepository) RedactMessage(messageID uint) error {
	result := chr.db.Model(&models.Message{}).
		Where("id = ?", messageID).
		UpdateColumns(map[string]interface{}{
			"content":  "",
			"redacted": true,
		})
	if result.Error != nil {
		return errs.Unavailable("could not redact message", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrMessageNotFound
	}
	return nil
}

// SearchMessages matches live message content case-insensitively within the
// conversations the user participates in, newest first, capped at limit.
func (chr *ChatRepository) SearchMessages(userID uint, term string, conversationID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := chr.db.
		Where("conversation_id IN (SELECT id FROM conversations WHERE user1_id = ? OR user2_id = ?)", userID, userID).
		Where("redacted = ?", false).
		Where("LOWER(content) LIKE ?", "%"+strings.ToLower(term)+"%")
	if conversationID != 0 {
		query = query.Where("conversation_id = ?", conversationID)
	}
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, errs.Unavailable("could not search messages", err)
	}
	return messages, nil
}
