package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post and stores the generated id on it
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `INSERT INTO posts (body) VALUES ($1) RETURNING id`
	return r.db.QueryRowxContext(ctx, query, post.Body).Scan(&post.ID)
}

// List returns all posts in insertion order
func (r *postRepo) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, `SELECT id, body FROM posts ORDER BY id`); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID retrieves a post by ID, returning nil when it does not exist
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `SELECT id, body FROM posts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts")
	return count, err
}
