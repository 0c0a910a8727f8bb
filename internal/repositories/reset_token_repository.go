package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var ErrResetTokenNotFound = errors.New("reset token not found")

// PasswordResetTokenRepository stores single-use reset tokens.
type PasswordResetTokenRepository interface {
	Create(db *gorm.DB, token *models.PasswordResetToken) error
	FindUnused(db *gorm.DB, tokenString string) (*models.PasswordResetToken, error)
	MarkUsed(db *gorm.DB, token *models.PasswordResetToken) error
}

type passwordResetTokenRepository struct{}

func NewPasswordResetTokenRepository() PasswordResetTokenRepository {
	return &passwordResetTokenRepository{}
}

func (r *passwordResetTokenRepository) Create(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *passwordResetTokenRepository) FindUnused(db *gorm.DB, tokenString string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := db.Where("token = ? AND used = ?", tokenString, false).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *passwordResetTokenRepository) MarkUsed(db *gorm.DB, token *models.PasswordResetToken) error {
	token.Used = true
	return db.Save(token).Error
}

// EmailVerificationTokenRepository stores single-use verification tokens.
type EmailVerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.EmailVerificationToken) error
	FindUnused(db *gorm.DB, tokenString string) (*models.EmailVerificationToken, error)
	MarkUsed(db *gorm.DB, token *models.EmailVerificationToken) error
}

type emailVerificationTokenRepository struct{}

func NewEmailVerificationTokenRepository() EmailVerificationTokenRepository {
	return &emailVerificationTokenRepository{}
}

func (r *emailVerificationTokenRepository) Create(db *gorm.DB, token *models.EmailVerificationToken) error {
	return db.Create(token).Error
}

func (r *emailVerificationTokenRepository) FindUnused(db *gorm.DB, tokenString string) (*models.EmailVerificationToken, error) {
	var token models.EmailVerificationToken
	err := db.Where("token = ? AND used = ?", tokenString, false).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *emailVerificationTokenRepository) MarkUsed(db *gorm.DB, token *models.EmailVerificationToken) error {
	token.Used = true
	return db.Save(token).Error
}
