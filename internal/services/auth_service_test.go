package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/email"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

func newAuthService() AuthService {
	return NewAuthService(
		repositories.NewUserRepository(),
		repositories.NewRoleRepository(),
		repositories.NewRefreshTokenRepository(),
		repositories.NewPasswordResetTokenRepository(),
		repositories.NewEmailVerificationTokenRepository(),
		auth.NewTokenManager("test-secret", 15*time.Minute),
		7*24*time.Hour,
		email.NoopSender{},
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{
		Email:    "new@test.com",
		Password: "password123",
		Name:     "New User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, []string{auth.RoleUser}, resp.User.Roles)

	login, err := svc.Login(db, &dto.LoginRequest{Email: "new@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestLoginDoesNotLeakAccounts(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()
	createTestUser(t, db, "known@test.com", auth.RoleUser)

	_, err := svc.Login(db, &dto.LoginRequest{Email: "known@test.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "unknown@test.com", Password: "whatever123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	req := &dto.RegisterRequest{Email: "dup@test.com", Password: "password123"}
	_, err := svc.Register(context.Background(), db, req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), db, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterRollsBackOnPartialFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	// Without the join table the role assignment cannot land; the user
	// row must not survive on its own, and the email stays available.
	require.NoError(t, db.Migrator().DropTable(&models.UserRole{}))

	_, err := svc.Register(context.Background(), db, &dto.RegisterRequest{
		Email:    "atomic@test.com",
		Password: "password123",
	})
	require.Error(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestRegisterWeakPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	_, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "weak@test.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestRefreshAndLogout(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "rt@test.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(db, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(db, resp.RefreshToken))

	// Revoked, not deleted: the row survives with the flag set.
	var stored models.RefreshToken
	require.NoError(t, db.Where("token = ?", resp.RefreshToken).First(&stored).Error)
	assert.True(t, stored.Revoked)

	_, err = svc.Refresh(db, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "exp@test.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("token = ?", resp.RefreshToken).
		UpdateColumn("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.Refresh(db, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "reset@test.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), db, "reset@test.com"))
	// Unknown emails get the same silent success.
	require.NoError(t, svc.RequestPasswordReset(context.Background(), db, "ghost@test.com"))

	token := lastResetToken(t, db, resp.User.ID)

	require.NoError(t, svc.ConfirmPasswordReset(db, token, "newpassword456"))

	// Old sessions died with the password.
	_, err = svc.Refresh(db, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "reset@test.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(db, &dto.LoginRequest{Email: "reset@test.com", Password: "newpassword456"})
	require.NoError(t, err)

	// Single use.
	err = svc.ConfirmPasswordReset(db, token, "anotherpass789")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestPasswordResetRollsBackOnPartialFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "half@test.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(context.Background(), db, "half@test.com"))
	token := lastResetToken(t, db, resp.User.ID)

	// Break the last write of the reset; the password change and the
	// token consumption must roll back with it.
	require.NoError(t, db.Migrator().DropTable(&models.RefreshToken{}))

	require.Error(t, svc.ConfirmPasswordReset(db, token, "newpassword456"))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", resp.User.ID).Error)
	assert.True(t, auth.CheckPasswordHash("password123", user.PasswordHash))

	var stored models.PasswordResetToken
	require.NoError(t, db.Where("token = ?", token).First(&stored).Error)
	assert.False(t, stored.Used)
}

func TestExpiredRefreshTokenPruning(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewRefreshTokenRepository()

	user := createTestUser(t, db, "prune@test.com", auth.RoleUser)
	expired := &models.RefreshToken{UserID: user.ID, Token: auth.NewOpaqueToken(), ExpiresAt: time.Now().Add(-time.Minute)}
	live := &models.RefreshToken{UserID: user.ID, Token: auth.NewOpaqueToken(), ExpiresAt: time.Now().Add(time.Hour)}
	revoked := &models.RefreshToken{UserID: user.ID, Token: auth.NewOpaqueToken(), ExpiresAt: time.Now().Add(time.Hour), Revoked: true}
	for _, tok := range []*models.RefreshToken{expired, live, revoked} {
		require.NoError(t, repo.Create(db, tok))
	}

	require.NoError(t, repo.DeleteExpired(db))

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, tok := range remaining {
		assert.NotEqual(t, expired.Token, tok.Token)
	}
}

func TestVerifyEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "verify@test.com", Password: "password123"})
	require.NoError(t, err)

	var token models.EmailVerificationToken
	require.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&token).Error)

	require.NoError(t, svc.VerifyEmail(db, token.Token))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", resp.User.ID).Error)
	assert.True(t, user.EmailVerified)

	assert.ErrorIs(t, svc.VerifyEmail(db, token.Token), apperrors.ErrResetTokenInvalid)
}

func lastResetToken(t *testing.T, db *gorm.DB, userID string) string {
	t.Helper()
	var token models.PasswordResetToken
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at DESC").First(&token).Error)
	return token.Token
}
