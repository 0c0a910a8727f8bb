package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

func newUserService() UserService {
	return NewUserService(
		repositories.NewUserRepository(),
		repositories.NewRoleRepository(),
		NewAuditService(repositories.NewAuditRepository()),
	)
}

func TestPromote(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService()

	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)
	user := createTestUser(t, db, "user@test.com", auth.RoleUser)

	resp, err := svc.Promote(context.Background(), db, admin.ID, user.ID, auth.RoleTechWriter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{auth.RoleUser, auth.RoleTechWriter}, resp.Roles)

	// Granting a role the user already holds is a conflict.
	_, err = svc.Promote(context.Background(), db, admin.ID, user.ID, auth.RoleTechWriter)
	assert.ErrorIs(t, err, apperrors.ErrRoleAlreadySet)

	_, err = svc.Promote(context.Background(), db, admin.ID, user.ID, "SuperUser")
	assert.ErrorIs(t, err, apperrors.ErrRoleNotFound)

	_, err = svc.Promote(context.Background(), db, admin.ID, "missing-user", auth.RoleTechWriter)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ?", "user.promote").Count(&auditCount).Error)
	assert.Equal(t, int64(1), auditCount)
}

func TestProfileLazyCreation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService()

	user := createTestUser(t, db, "user@test.com", auth.RoleUser)

	// Before any write the profile mirrors the user record.
	resp, err := svc.GetProfile(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)
	assert.Empty(t, resp.Bio)

	bio := "Writes about distributed systems."
	name := "Jordan"
	updated, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{Bio: &bio, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, name, updated.Name)

	var profileCount int64
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error)
	assert.Equal(t, int64(1), profileCount)

	// Second update reuses the same row.
	avatar := "https://cdn.example.com/avatar.png"
	_, err = svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{AvatarURL: &avatar})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error)
	assert.Equal(t, int64(1), profileCount)

	_, err = svc.GetProfile(db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeactivate(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService()

	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)
	user := createTestUser(t, db, "user@test.com", auth.RoleUser)

	require.NoError(t, svc.Deactivate(context.Background(), db, admin.ID, user.ID))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.False(t, stored.IsActive)

	// Idempotent.
	require.NoError(t, svc.Deactivate(context.Background(), db, admin.ID, user.ID))
}
