package database

import (
	"fmt"

	"github.com/Kiranpjk/RapidGigs-sub001/configs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection and migrates the messaging tables.
// TranslateError is on so the canonical-pair uniqueness race surfaces as
// gorm.ErrDuplicatedKey instead of a raw driver error.
func Connect(config *configs.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
		config.Viper.GetString("database.host"),
		config.Viper.GetString("database.user"),
		config.Viper.GetString("database.password"),
		config.Viper.GetString("database.name"),
		config.Viper.GetInt("database.port"),
		config.Viper.GetString("database.ssl"),
		config.Viper.GetString("database.timezone"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.Presence{},
		&models.TypingIndicator{},
	)
}
