package models

// MaxBodyLength is the maximum number of characters in a post or comment body.
// It must match the max rule in the PostInput and CommentInput binding tags.
const MaxBodyLength = 255

// PostInput is the request body for creating a post
type PostInput struct {
	Body string `json:"body" binding:"required,min=1,max=255,nonul"`
}

// Post represents a stored post
type Post struct {
	ID   int64  `json:"id" db:"id"`
	Body string `json:"body" db:"body"`
}

// PostWithComments is the combined read of a post and its comments
type PostWithComments struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// Stats holds row counts for the stats endpoint
type Stats struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}
