package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

func newCategoryService() CategoryService {
	return NewCategoryService(
		repositories.NewCategoryRepository(),
		repositories.NewSubscriptionRepository(),
		NewAuditService(repositories.NewAuditRepository()),
	)
}

func TestCategoryCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService()
	admin := createTestUser(t, db, "admin@test.com", auth.RoleAdmin)

	created, err := svc.Create(context.Background(), db, admin.ID, &dto.CategoryRequest{Name: "Tech", Description: "tech news"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), db, admin.ID, &dto.CategoryRequest{Name: "Tech"})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNameTaken)

	newName := "Technology"
	updated, err := svc.Update(context.Background(), db, admin.ID, created.ID, &dto.UpdateCategoryRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Technology", updated.Name)

	list, err := svc.List(db)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(context.Background(), db, admin.ID, created.ID))

	_, err = svc.Get(db, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestSubscriptionLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService()

	user := createTestUser(t, db, "user@test.com", auth.RoleUser)
	category := createTestCategory(t, db, "Music")

	require.NoError(t, svc.Subscribe(db, user.ID, category.ID))

	// Duplicate subscriptions are a conflict, not a silent no-op.
	assert.ErrorIs(t, svc.Subscribe(db, user.ID, category.ID), apperrors.ErrAlreadySubscribed)

	assert.ErrorIs(t, svc.Subscribe(db, user.ID, "missing-category"), apperrors.ErrCategoryNotFound)

	require.NoError(t, svc.Unsubscribe(db, user.ID, category.ID))
	assert.ErrorIs(t, svc.Unsubscribe(db, user.ID, category.ID), apperrors.ErrSubscriptionAbsent)
}
