package dto

import (
	"time"

	"pressroom_backend/internal/models"
)

type CreateContentRequest struct {
	Title       string  `json:"title" binding:"required" validate:"required,max=256"`
	Body        string  `json:"body"`
	MediaURL    string  `json:"media_url" validate:"omitempty,url,max=512"`
	ContentType string  `json:"content_type" binding:"required" validate:"required,oneof=video audio article"`
	Status      string  `json:"status" validate:"omitempty,oneof=Draft Pending Published"`
	CategoryID  *string `json:"category_id"`
}

type UpdateContentRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=256"`
	Body        *string `json:"body"`
	MediaURL    *string `json:"media_url" validate:"omitempty,url,max=512"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=video audio article"`
	Status      *string `json:"status" validate:"omitempty,oneof=Draft Pending Published"`
	CategoryID  *string `json:"category_id"`
}

type FlagContentRequest struct {
	Reason string `json:"reason" binding:"required" validate:"required,min=1"`
}

type ReactionRequest struct {
	Type string `json:"type" binding:"required" validate:"required,oneof=Like Dislike"`
}

type ContentResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Body        string               `json:"body"`
	MediaURL    string               `json:"media_url"`
	ContentType models.ContentType   `json:"content_type"`
	Status      models.ContentStatus `json:"status"`
	AuthorID    string               `json:"author_id"`
	CategoryID  *string              `json:"category_id"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ContentListResponse struct {
	Items   []ContentResponse `json:"items"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Total   int64             `json:"total"`
}
