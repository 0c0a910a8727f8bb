package dto

import "time"

type NotificationResponse struct {
	ID        string    `json:"id"`
	ContentID *string   `json:"content_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items   []NotificationResponse `json:"items"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
	Total   int64                  `json:"total"`
}
