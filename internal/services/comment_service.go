package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

type CommentService interface {
	Create(ctx context.Context, db *gorm.DB, userID, contentID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	// Update is restricted to the author, and only within the edit
	// window. Admins cannot edit other people's comments.
	Update(db *gorm.DB, userID, contentID, commentID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	// Delete removes the comment and its whole reply subtree. Author or
	// admin.
	Delete(ctx context.Context, db *gorm.DB, userID string, userRoles []string, contentID, commentID string) error
	ListTree(db *gorm.DB, contentID string) ([]*dto.CommentNode, error)
}

type commentService struct {
	commentRepo     repositories.CommentRepository
	contentRepo     repositories.ContentRepository
	notificationSvc NotificationService
	auditSvc        AuditService
	editWindow      time.Duration
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	contentRepo repositories.ContentRepository,
	notificationSvc NotificationService,
	auditSvc AuditService,
	editWindow time.Duration,
) CommentService {
	return &commentService{
		commentRepo:     commentRepo,
		contentRepo:     contentRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		editWindow:      editWindow,
	}
}

func (s *commentService) Create(ctx context.Context, db *gorm.DB, userID, contentID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content, err := s.contentRepo.FindByID(db, contentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContentNotFound) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.ParentID != nil {
		// The parent must be a comment on the same content item.
		if _, err := s.commentRepo.FindByIDAndContent(db, *req.ParentID, content.ID); err != nil {
			if apperrors.Is(err, repositories.ErrCommentNotFound) {
				return nil, apperrors.ErrInvalidParentComment
			}
			return nil, apperrors.InternalError(err)
		}
	}

	comment := &models.Comment{
		ContentID: content.ID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Body:      req.Body,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notificationSvc.NotifyContentAuthor(ctx, db, content, userID,
		fmt.Sprintf("New comment on: %s", content.Title))

	return toCommentResponse(comment), nil
}

func (s *commentService) Update(db *gorm.DB, userID, contentID, commentID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.findComment(db, commentID, contentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, apperrors.ErrCommentEditDenied
	}
	if !editableAt(comment.CreatedAt, time.Now(), s.editWindow) {
		return nil, apperrors.ErrCommentEditDenied
	}

	comment.Body = req.Body
	if err := s.commentRepo.Update(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, db *gorm.DB, userID string, userRoles []string, contentID, commentID string) error {
	comment, err := s.findComment(db, commentID, contentID)
	if err != nil {
		return err
	}

	isAdmin := auth.IsAdmin(userRoles)
	if comment.UserID != userID && !isAdmin {
		return apperrors.ErrCommentDeleteDenied
	}

	ids, err := s.collectSubtree(db, comment)
	if err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByIDs(db, ids); err != nil {
		return apperrors.InternalError(err)
	}

	if isAdmin && comment.UserID != userID {
		s.auditSvc.Record(ctx, db, userID, "comment.delete", "comment", comment.ID,
			map[string]interface{}{"content_id": comment.ContentID, "removed": len(ids)})
	}
	return nil
}

func (s *commentService) ListTree(db *gorm.DB, contentID string) ([]*dto.CommentNode, error) {
	if _, err := s.contentRepo.FindByID(db, contentID); err != nil {
		if apperrors.Is(err, repositories.ErrContentNotFound) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	comments, err := s.commentRepo.ListByContent(db, contentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCommentTree(comments), nil
}

// editableAt reports whether a comment created at createdAt may still be
// edited at now. The window is half-open: the boundary instant itself is
// already too late.
func editableAt(createdAt, now time.Time, window time.Duration) bool {
	return now.Sub(createdAt) < window
}

// buildCommentTree assembles the flat, creation-ordered rows into a reply
// tree in a single pass over an id -> node map.
func buildCommentTree(comments []models.Comment) []*dto.CommentNode {
	nodes := make(map[string]*dto.CommentNode, len(comments))
	roots := make([]*dto.CommentNode, 0)

	for i := range comments {
		c := &comments[i]
		nodes[c.ID] = &dto.CommentNode{
			ID:        c.ID,
			UserID:    c.UserID,
			Body:      c.Body,
			ParentID:  c.ParentID,
			CreatedAt: c.CreatedAt,
			Replies:   []*dto.CommentNode{},
		}
	}

	for i := range comments {
		c := &comments[i]
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		} else {
			// Orphaned rows surface at the top rather than vanish.
			roots = append(roots, node)
		}
	}
	return roots
}

// collectSubtree returns the ids of the comment and every descendant.
func (s *commentService) collectSubtree(db *gorm.DB, root *models.Comment) ([]string, error) {
	comments, err := s.commentRepo.ListByContent(db, root.ContentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	children := make(map[string][]string, len(comments))
	for i := range comments {
		if comments[i].ParentID != nil {
			children[*comments[i].ParentID] = append(children[*comments[i].ParentID], comments[i].ID)
		}
	}

	ids := []string{root.ID}
	for queue := []string{root.ID}; len(queue) > 0; {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return ids, nil
}

func (s *commentService) findComment(db *gorm.DB, commentID, contentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByIDAndContent(db, commentID, contentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}

func toCommentResponse(c *models.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		ContentID: c.ContentID,
		Body:      c.Body,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}
