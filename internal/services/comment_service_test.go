package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

func newCommentService() CommentService {
	categoryRepo := repositories.NewCategoryRepository()
	return NewCommentService(
		repositories.NewCommentRepository(),
		repositories.NewContentRepository(),
		NewNotificationService(repositories.NewNotificationRepository(), repositories.NewSubscriptionRepository(), categoryRepo),
		NewAuditService(repositories.NewAuditRepository()),
		30*time.Minute,
	)
}

func TestCommentTreeAssembly(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService()

	author := createTestUser(t, db, "author@test.com", auth.RoleUser)
	content := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)

	root1, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "first"})
	require.NoError(t, err)
	reply, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "reply", ParentID: &root1.ID})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "nested", ParentID: &reply.ID})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "second"})
	require.NoError(t, err)

	tree, err := svc.ListTree(db, content.ID)
	require.NoError(t, err)

	require.Len(t, tree, 2)
	assert.Equal(t, "first", tree[0].Body)
	assert.Equal(t, "second", tree[1].Body)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "reply", tree[0].Replies[0].Body)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested", tree[0].Replies[0].Replies[0].Body)
}

func TestCommentInvalidParent(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService()

	author := createTestUser(t, db, "author@test.com", auth.RoleUser)
	content := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)
	other := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)

	// Parent comment lives on a different content item.
	foreign, err := svc.Create(context.Background(), db, author.ID, other.ID, &dto.CreateCommentRequest{Body: "elsewhere"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "x", ParentID: &foreign.ID})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParentComment)

	missing := "no-such-id"
	_, err = svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "x", ParentID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParentComment)
}

func TestCommentEditWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService()

	author := createTestUser(t, db, "author@test.com", auth.RoleUser)
	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)
	content := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)

	comment, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "original"})
	require.NoError(t, err)

	// Fresh comment, author may edit.
	updated, err := svc.Update(db, author.ID, content.ID, comment.ID, &dto.UpdateCommentRequest{Body: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)

	// Admins never edit other people's comments, window or not.
	_, err = svc.Update(db, admin.ID, content.ID, comment.ID, &dto.UpdateCommentRequest{Body: "hijack"})
	assert.ErrorIs(t, err, apperrors.ErrCommentEditDenied)

	// Push the comment past the window; even the author is locked out.
	backdate(t, db, comment.ID, time.Now().Add(-31*time.Minute))
	_, err = svc.Update(db, author.ID, content.ID, comment.ID, &dto.UpdateCommentRequest{Body: "too late"})
	assert.ErrorIs(t, err, apperrors.ErrCommentEditDenied)
}

func TestCommentDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService()

	author := createTestUser(t, db, "author@test.com", auth.RoleUser)
	content := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)

	root, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "root"})
	require.NoError(t, err)
	reply, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "reply", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "nested", ParentID: &reply.ID})
	require.NoError(t, err)
	keep, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "keep"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), db, author.ID, []string{auth.RoleUser}, content.ID, root.ID)
	require.NoError(t, err)

	tree, err := svc.ListTree(db, content.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, keep.ID, tree[0].ID)
}

func TestCommentDeletePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService()

	author := createTestUser(t, db, "author@test.com", auth.RoleUser)
	stranger := createTestUser(t, db, "stranger@test.com", auth.RoleUser)
	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)
	content := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)

	comment, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "hello"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), db, stranger.ID, []string{auth.RoleUser}, content.ID, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentDeleteDenied)

	// Admin moderation removes the comment and leaves an audit entry.
	err = svc.Delete(context.Background(), db, admin.ID, []string{auth.RoleAdmin}, content.ID, comment.ID)
	require.NoError(t, err)

	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ?", "comment.delete").Count(&auditCount).Error)
	assert.Equal(t, int64(1), auditCount)
}

func TestEditWindowBoundary(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	window := 30 * time.Minute

	assert.True(t, editableAt(created, created.Add(window-time.Second), window))
	// The boundary instant itself is already closed.
	assert.False(t, editableAt(created, created.Add(window), window))
	assert.False(t, editableAt(created, created.Add(window+time.Second), window))
}

func TestCommentNotifiesContentAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService()

	author := createTestUser(t, db, "author@test.com", auth.RoleUser)
	reader := createTestUser(t, db, "reader@test.com", auth.RoleUser)
	content := createTestContent(t, db, author.ID, models.ContentStatusPublished, nil)

	// The author commenting on their own content stays quiet.
	_, err := svc.Create(context.Background(), db, author.ID, content.ID, &dto.CreateCommentRequest{Body: "self"})
	require.NoError(t, err)
	assert.Zero(t, countNotifications(t, db))

	_, err = svc.Create(context.Background(), db, reader.ID, content.ID, &dto.CreateCommentRequest{Body: "nice piece"})
	require.NoError(t, err)

	var note models.Notification
	require.NoError(t, db.Where("user_id = ?", author.ID).First(&note).Error)
	assert.Equal(t, "New comment on: "+content.Title, note.Message)
}

func backdate(t *testing.T, db *gorm.DB, commentID string, ts time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("created_at", ts).Error)
}
