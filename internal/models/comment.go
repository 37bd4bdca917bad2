package models

// CommentInput is the request body for creating a comment.
// PostID is a pointer so a missing field is distinguishable from zero.
type CommentInput struct {
	Body   string `json:"body" binding:"required,min=1,max=255,nonul"`
	PostID *int64 `json:"post_id" binding:"required"`
}

// Comment represents a stored comment on a post
type Comment struct {
	ID     int64  `json:"id" db:"id"`
	Body   string `json:"body" db:"body"`
	PostID int64  `json:"post_id" db:"post_id"`
}
