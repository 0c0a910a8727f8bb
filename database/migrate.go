package database

import (
	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.UserProfile{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.EmailVerificationToken{},
		&models.Category{},
		&models.Content{},
		&models.Comment{},
		&models.Reaction{},
		&models.Subscription{},
		&models.Notification{},
		&models.AuditLog{},
	)
}
