package dto

import "time"

type CreateCommentRequest struct {
	Body     string  `json:"body" binding:"required" validate:"required,min=1"`
	ParentID *string `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required" validate:"required,min=1"`
}

// CommentNode is one node of the assembled reply tree.
type CommentNode struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Body      string         `json:"body"`
	ParentID  *string        `json:"parent_id"`
	CreatedAt time.Time      `json:"created_at"`
	Replies   []*CommentNode `json:"replies"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ContentID string    `json:"content_id"`
	Body      string    `json:"body"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}
