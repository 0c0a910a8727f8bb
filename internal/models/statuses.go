package models

type ContentStatus string
type ContentType string
type ReactionType string

const (
	ContentStatusDraft     ContentStatus = "Draft"
	ContentStatusPending   ContentStatus = "Pending"
	ContentStatusPublished ContentStatus = "Published"
	ContentStatusFlagged   ContentStatus = "Flagged"

	ContentTypeVideo   ContentType = "video"
	ContentTypeAudio   ContentType = "audio"
	ContentTypeArticle ContentType = "article"

	ReactionLike    ReactionType = "Like"
	ReactionDislike ReactionType = "Dislike"
)
