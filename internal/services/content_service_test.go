package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

func newContentService() ContentService {
	categoryRepo := repositories.NewCategoryRepository()
	return NewContentService(
		repositories.NewContentRepository(),
		categoryRepo,
		repositories.NewReactionRepository(),
		NewNotificationService(repositories.NewNotificationRepository(), repositories.NewSubscriptionRepository(), categoryRepo),
		NewAuditService(repositories.NewAuditRepository()),
	)
}

func subscribe(t *testing.T, db *gorm.DB, userID, categoryID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Subscription{UserID: userID, CategoryID: categoryID}).Error)
}

func TestContentCreateRoleGate(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	user := createTestUser(t, db, "user@test.com", auth.RoleUser)
	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)

	req := &dto.CreateContentRequest{Title: "My piece", ContentType: "article"}

	_, err := svc.Create(context.Background(), db, user.ID, user.RoleNames, req)
	assert.ErrorIs(t, err, apperrors.ErrContentForbidden)

	resp, err := svc.Create(context.Background(), db, writer.ID, writer.RoleNames, req)
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusDraft, resp.Status)
	assert.Equal(t, writer.ID, resp.AuthorID)
}

func TestPublishFanOut(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	subA := createTestUser(t, db, "a@test.com", auth.RoleUser)
	subB := createTestUser(t, db, "b@test.com", auth.RoleUser)
	category := createTestCategory(t, db, "Tech")

	subscribe(t, db, subA.ID, category.ID)
	subscribe(t, db, subB.ID, category.ID)
	// The author's own subscription must not notify them.
	subscribe(t, db, writer.ID, category.ID)

	created, err := svc.Create(context.Background(), db, writer.ID, writer.RoleNames, &dto.CreateContentRequest{
		Title:       "Go generics",
		ContentType: "article",
		CategoryID:  &category.ID,
	})
	require.NoError(t, err)
	assert.Zero(t, countNotifications(t, db))

	published := string(models.ContentStatusPublished)
	_, err = svc.Update(context.Background(), db, writer.ID, writer.RoleNames, created.ID, &dto.UpdateContentRequest{Status: &published})
	require.NoError(t, err)

	assert.Equal(t, int64(2), countNotifications(t, db))

	var note models.Notification
	require.NoError(t, db.Where("user_id = ?", subA.ID).First(&note).Error)
	assert.Equal(t, fmt.Sprintf("New %s in %s: %s", "article", "Tech", "Go generics"), note.Message)
	require.NotNil(t, note.ContentID)
	assert.Equal(t, created.ID, *note.ContentID)

	// Editing an already published item does not notify again.
	newTitle := "Go generics, revised"
	_, err = svc.Update(context.Background(), db, writer.ID, writer.RoleNames, created.ID, &dto.UpdateContentRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, int64(2), countNotifications(t, db))
}

func TestCreateDirectlyPublishedFansOut(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	reader := createTestUser(t, db, "reader@test.com", auth.RoleUser)
	category := createTestCategory(t, db, "News")
	subscribe(t, db, reader.ID, category.ID)

	_, err := svc.Create(context.Background(), db, writer.ID, writer.RoleNames, &dto.CreateContentRequest{
		Title:       "Breaking",
		ContentType: "video",
		Status:      string(models.ContentStatusPublished),
		CategoryID:  &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countNotifications(t, db))
}

func TestContentVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	stranger := createTestUser(t, db, "stranger@test.com", auth.RoleUser)
	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)

	draft := createTestContent(t, db, writer.ID, models.ContentStatusDraft, nil)
	createTestContent(t, db, writer.ID, models.ContentStatusPublished, nil)

	_, err := svc.Get(db, stranger.ID, stranger.RoleNames, draft.ID)
	assert.ErrorIs(t, err, apperrors.ErrContentNotFound)

	_, err = svc.Get(db, writer.ID, writer.RoleNames, draft.ID)
	require.NoError(t, err)
	_, err = svc.Get(db, admin.ID, admin.RoleNames, draft.ID)
	require.NoError(t, err)

	list, err := svc.List(db, stranger.RoleNames, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	adminList, err := svc.List(db, admin.RoleNames, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminList.Total)
}

func TestContentUpdateAndDeletePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	rival := createTestUser(t, db, "rival@test.com", auth.RoleTechWriter)
	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)

	content := createTestContent(t, db, writer.ID, models.ContentStatusPublished, nil)

	newTitle := "hijacked"
	_, err := svc.Update(context.Background(), db, rival.ID, rival.RoleNames, content.ID, &dto.UpdateContentRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrContentForbidden)

	err = svc.Delete(context.Background(), db, rival.ID, rival.RoleNames, content.ID)
	assert.ErrorIs(t, err, apperrors.ErrContentForbidden)

	err = svc.Delete(context.Background(), db, admin.ID, admin.RoleNames, content.ID)
	require.NoError(t, err)
}

func TestFlagContent(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)
	content := createTestContent(t, db, writer.ID, models.ContentStatusPublished, nil)

	_, err := svc.Flag(context.Background(), db, admin.ID, content.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrFlagReasonRequired)

	resp, err := svc.Flag(context.Background(), db, admin.ID, content.ID, "spam")
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusFlagged, resp.Status)

	var entry models.AuditLog
	require.NoError(t, db.Where("action = ?", "content.flag").First(&entry).Error)
	assert.Equal(t, admin.ID, entry.UserID)
	assert.Equal(t, content.ID, entry.TargetID)
}

func TestReactions(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	reader := createTestUser(t, db, "reader@test.com", auth.RoleUser)

	published := createTestContent(t, db, writer.ID, models.ContentStatusPublished, nil)
	draft := createTestContent(t, db, writer.ID, models.ContentStatusDraft, nil)

	require.NoError(t, svc.React(context.Background(), db, reader.ID, published.ID, models.ReactionLike))
	// Switching the reaction replaces it instead of stacking.
	require.NoError(t, svc.React(context.Background(), db, reader.ID, published.ID, models.ReactionDislike))

	var reactions []models.Reaction
	require.NoError(t, db.Where("content_id = ?", published.ID).Find(&reactions).Error)
	require.Len(t, reactions, 1)
	assert.Equal(t, models.ReactionDislike, reactions[0].Type)

	assert.ErrorIs(t, svc.React(context.Background(), db, reader.ID, draft.ID, models.ReactionLike), apperrors.ErrContentNotFound)

	require.NoError(t, svc.RemoveReaction(db, reader.ID, published.ID))
	require.NoError(t, db.Where("content_id = ?", published.ID).Find(&reactions).Error)
	assert.Empty(t, reactions)
}

func TestLikeNotifiesAuthorOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService()

	writer := createTestUser(t, db, "writer@test.com", auth.RoleTechWriter)
	reader := createTestUser(t, db, "reader@test.com", auth.RoleUser)
	content := createTestContent(t, db, writer.ID, models.ContentStatusPublished, nil)

	require.NoError(t, svc.React(context.Background(), db, reader.ID, content.ID, models.ReactionLike))
	assert.Equal(t, int64(1), countNotifications(t, db))

	var note models.Notification
	require.NoError(t, db.Where("user_id = ?", writer.ID).First(&note).Error)
	assert.Equal(t, "New like on: "+content.Title, note.Message)

	// Flipping the reaction back and forth does not ping the author again.
	require.NoError(t, svc.React(context.Background(), db, reader.ID, content.ID, models.ReactionDislike))
	require.NoError(t, svc.React(context.Background(), db, reader.ID, content.ID, models.ReactionLike))
	assert.Equal(t, int64(1), countNotifications(t, db))

	// Liking your own content stays quiet.
	require.NoError(t, svc.React(context.Background(), db, writer.ID, content.ID, models.ReactionLike))
	assert.Equal(t, int64(1), countNotifications(t, db))
}

func countNotifications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&n).Error)
	return n
}
