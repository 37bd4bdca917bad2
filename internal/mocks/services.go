package mocks

import (
	"context"
	"errors"

	"github.com/blog-api/internal/models"
)

var errNotStubbed = errors.New("mock: operation not stubbed")

// MockPostService is a PostService whose operations are supplied per test.
// Unset operations fail with errNotStubbed.
type MockPostService struct {
	CreatePostFunc          func(ctx context.Context, in models.PostInput) (*models.Post, error)
	ListPostsFunc           func(ctx context.Context) ([]models.Post, error)
	CreateCommentFunc       func(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	ListCommentsFunc        func(ctx context.Context, postID int64) ([]models.Comment, error)
	GetPostWithCommentsFunc func(ctx context.Context, postID int64) (*models.PostWithComments, error)
	StatsFunc               func(ctx context.Context) (*models.Stats, error)
}

// FailingPostService returns a MockPostService where every operation returns err
func FailingPostService(err error) *MockPostService {
	return &MockPostService{
		CreatePostFunc:    func(context.Context, models.PostInput) (*models.Post, error) { return nil, err },
		ListPostsFunc:     func(context.Context) ([]models.Post, error) { return nil, err },
		CreateCommentFunc: func(context.Context, models.CommentInput) (*models.Comment, error) { return nil, err },
		ListCommentsFunc:  func(context.Context, int64) ([]models.Comment, error) { return nil, err },
		GetPostWithCommentsFunc: func(context.Context, int64) (*models.PostWithComments, error) {
			return nil, err
		},
		StatsFunc: func(context.Context) (*models.Stats, error) { return nil, err },
	}
}

func (m *MockPostService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	if m.CreatePostFunc == nil {
		return nil, errNotStubbed
	}
	return m.CreatePostFunc(ctx, in)
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	if m.ListPostsFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListPostsFunc(ctx)
}

func (m *MockPostService) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	if m.CreateCommentFunc == nil {
		return nil, errNotStubbed
	}
	return m.CreateCommentFunc(ctx, in)
}

func (m *MockPostService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if m.ListCommentsFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListCommentsFunc(ctx, postID)
}

func (m *MockPostService) GetPostWithComments(ctx context.Context, postID int64) (*models.PostWithComments, error) {
	if m.GetPostWithCommentsFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetPostWithCommentsFunc(ctx, postID)
}

func (m *MockPostService) Stats(ctx context.Context) (*models.Stats, error) {
	if m.StatsFunc == nil {
		return nil, errNotStubbed
	}
	return m.StatsFunc(ctx)
}
