package repositories

import (
	"errors"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"

	"gorm.io/gorm"
)

// DirectoryRepository resolves user ids to display metadata from the users
// table. It is the local implementation of the directory collaborator.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{
		db: db,
	}
}

func (dr *DirectoryRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := dr.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, errs.Unavailable("could not load user", err)
	}
	return &user, nil
}
