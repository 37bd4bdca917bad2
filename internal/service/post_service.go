package service

import (
	"context"
	"fmt"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newPostService(repos *repository.Repositories, log zerolog.Logger) *postService {
	return &postService{
		posts:    repos.Post,
		comments: repos.Comment,
		log:      log.With().Str("service", "post").Logger(),
	}
}

// CreatePost inserts a new post and returns it with its generated id
func (s *postService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	post := &models.Post{Body: in.Body}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Debug().Int64("post_id", post.ID).Msg("Post created")
	return post, nil
}

// ListPosts returns every post
func (s *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreateComment inserts a comment after confirming its post exists.
// The check and the insert are not atomic; posts are never deleted.
func (s *postService) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	if in.PostID == nil {
		return nil, fmt.Errorf("create comment: post_id is required")
	}
	postID := *in.PostID

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post %d: %w", postID, err)
	}
	if post == nil {
		return nil, &NotFoundError{PostID: postID}
	}

	comment := &models.Comment{Body: in.Body, PostID: postID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment on post %d: %w", postID, err)
	}

	s.log.Debug().Int64("post_id", postID).Int64("comment_id", comment.ID).Msg("Comment created")
	return comment, nil
}

// ListComments returns the comments of a post without checking that the
// post exists; an unknown id gives an empty list.
func (s *postService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// GetPostWithComments returns a post together with its comments
func (s *postService) GetPostWithComments(ctx context.Context, postID int64) (*models.PostWithComments, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post %d: %w", postID, err)
	}
	if post == nil {
		return nil, &NotFoundError{PostID: postID}
	}

	comments, err := s.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &models.PostWithComments{Post: *post, Comments: comments}, nil
}

// Stats returns row counts of both tables
func (s *postService) Stats(ctx context.Context) (*models.Stats, error) {
	posts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &models.Stats{Posts: posts, Comments: comments}, nil
}
