package repository

import (
	"context"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment. The referenced post must already exist;
// the foreign key only backs that up.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (body, post_id) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowxContext(ctx, query, comment.Body, comment.PostID).Scan(&comment.ID)
}

// ListByPost returns the comments of a post in insertion order.
// An unknown post yields an empty list.
func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT id, body, post_id FROM comments WHERE post_id = $1 ORDER BY id`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM comments")
	return count, err
}
