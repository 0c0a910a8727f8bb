package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores refresh tokens. Revocation flips a flag
// instead of deleting so issued credentials stay on record.
type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error)
	Revoke(db *gorm.DB, tokenString string) error
	RevokeAllForUser(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB) error
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) Revoke(db *gorm.DB, tokenString string) error {
	result := db.Model(&models.RefreshToken{}).
		Where("token = ?", tokenString).
		Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (r *refreshTokenRepository) RevokeAllForUser(db *gorm.DB, userID string) error {
	return db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// DeleteExpired prunes tokens past expiry. Revoked-but-unexpired rows are
// kept for the audit trail.
func (r *refreshTokenRepository) DeleteExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}
