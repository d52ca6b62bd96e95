package repositories

import (
	"errors"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresenceRepository struct {
	db *gorm.DB
}

func NewPresenceRepository(db *gorm.DB) *PresenceRepository {
	return &PresenceRepository{
		db: db,
	}
}

// Bind records connectionID as the user's single connection of record. Last
// writer wins: a newer connection simply supersedes whatever was bound.
func (pr *PresenceRepository) Bind(userID uint, connectionID string) error {
	now := time.Now()
	presence := models.Presence{
		UserID:       userID,
		Online:       true,
		LastSeen:     &now,
		ConnectionID: &connectionID,
	}
	err := pr.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"online":        true,
			"last_seen":     now,
			"connection_id": connectionID,
			"updated_at":    now,
		}),
	}).Create(&presence).Error
	if err != nil {
		return errs.Unavailable("could not bind presence", err)
	}
	return nil
}

// Unbind flips the user offline only if connectionID is still the connection
// of record. A stale disconnect for a superseded connection is a no-op, which
// is what keeps the freshly reconnected user online. Reports whether the
// unbind took effect.
func (pr *PresenceRepository) Unbind(userID uint, connectionID string) (bool, error) {
	now := time.Now()
	result := pr.db.Model(&models.Presence{}).
		Where("user_id = ? AND connection_id = ?", userID, connectionID).
		Updates(map[string]interface{}{
			"online":        false,
			"last_seen":     now,
			"connection_id": nil,
		})
	if result.Error != nil {
		return false, errs.Unavailable("could not unbind presence", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Get returns the user's presence, or an offline zero record if the user has
// never connected.
func (pr *PresenceRepository) Get(userID uint) (*models.Presence, error) {
	var presence models.Presence
	err := pr.db.Where("user_id = ?", userID).First(&presence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Presence{UserID: userID}, nil
		}
		return nil, errs.Unavailable("could not load presence", err)
	}
	return &presence, nil
}

func (pr *PresenceRepository) Snapshot(userIDs []uint) ([]models.Presence, error) {
	var presences []models.Presence
	if err := pr.db.Where("user_id IN ?", userIDs).Find(&presences).Error; err != nil {
		return nil, errs.Unavailable("could not load presence snapshot", err)
	}
	return presences, nil
}

func (pr *PresenceRepository) OnlineUserIDs() ([]uint, error) {
	var userIDs []uint
	if err := pr.db.Model(&models.Presence{}).
		Where("online = ?", true).
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, errs.Unavailable("could not list online users", err)
	}
	return userIDs, nil
}
