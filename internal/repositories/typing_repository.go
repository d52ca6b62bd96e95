package repositories

import (
	"errors"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TypingRepository struct {
	db *gorm.DB
}

func NewTypingRepository(db *gorm.DB) *TypingRepository {
	return &TypingRepository{
		db: db,
	}
}

// Upsert refreshes the indicator's timestamp on every signal. Expiry is
// handled at read time, so lost updates here are harmless.
func (tr *TypingRepository) Upsert(conversationID, userID uint, isTyping bool) error {
	now := time.Now()
	indicator := models.TypingIndicator{
		ConversationID: conversationID,
		UserID:         userID,
		IsTyping:       isTyping,
		UpdatedAt:      now,
	}
	err := tr.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "conversation_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_typing":  isTyping,
			"updated_at": now,
		}),
	}).Create(&indicator).Error
	if err != nil {
		return errs.Unavailable("could not upsert typing indicator", err)
	}
	return nil
}

func (tr *TypingRepository) Get(conversationID, userID uint) (*models.TypingIndicator, error) {
	var indicator models.TypingIndicator
	err := tr.db.
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&indicator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.Unavailable("could not load typing indicator", err)
	}
	return &indicator, nil
}
