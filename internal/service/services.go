package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrPostNotFound is matched by every *NotFoundError
var ErrPostNotFound = errors.New("post not found")

// NotFoundError reports a referenced post id that does not exist
type NotFoundError struct {
	PostID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %d not found", e.PostID)
}

// Is makes errors.Is(err, ErrPostNotFound) true
func (e *NotFoundError) Is(target error) bool {
	return target == ErrPostNotFound
}

// PostService defines the post and comment operations exposed over HTTP
type PostService interface {
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
	GetPostWithComments(ctx context.Context, postID int64) (*models.PostWithComments, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// Services holds all service interfaces
type Services struct {
	Post PostService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Post: newPostService(repos, log),
	}
}
