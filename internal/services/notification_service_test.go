package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/pkg/apperrors"
)

func newNotificationService() NotificationService {
	return NewNotificationService(
		repositories.NewNotificationRepository(),
		repositories.NewSubscriptionRepository(),
		repositories.NewCategoryRepository(),
	)
}

func seedNotification(t *testing.T, db *gorm.DB, userID, message string) *models.Notification {
	t.Helper()
	n := &models.Notification{UserID: userID, Message: message}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestNotificationList(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService()

	user := createTestUser(t, db, "user@test.com", auth.RoleUser)
	other := createTestUser(t, db, "other@test.com", auth.RoleUser)

	seedNotification(t, db, user.ID, "one")
	seedNotification(t, db, user.ID, "two")
	seedNotification(t, db, other.ID, "not yours")

	resp, err := svc.List(db, user.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.NotEqual(t, "not yours", item.Message)
	}
}

func TestMarkReadIsIdempotentAndScoped(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService()

	user := createTestUser(t, db, "user@test.com", auth.RoleUser)
	other := createTestUser(t, db, "other@test.com", auth.RoleUser)
	n := seedNotification(t, db, user.ID, "hello")

	resp, err := svc.MarkRead(db, user.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsRead)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	require.NotNil(t, stored.ReadAt)
	firstReadAt := *stored.ReadAt

	// Second call succeeds without touching the timestamp.
	again, err := svc.MarkRead(db, user.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.Equal(t, firstReadAt, *stored.ReadAt)

	// Another user cannot read someone else's notification.
	_, err = svc.MarkRead(db, other.ID, n.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}
