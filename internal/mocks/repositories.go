package mocks

import (
	"context"
	"sync"

	"github.com/blog-api/internal/models"
)

// MockPostRepository is an in-memory PostRepository with sequential ids
type MockPostRepository struct {
	mu          sync.Mutex
	Posts       []models.Post
	nextID      int64
	InsertError error
	QueryError  error
	CreateCalls int
	GetCalls    int
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{nextID: 1}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	post.ID = m.nextID
	m.nextID++
	m.Posts = append(m.Posts, *post)
	return nil
}

func (m *MockPostRepository) List(ctx context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}
	posts := make([]models.Post, len(m.Posts))
	copy(posts, m.Posts)
	return posts, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	for _, p := range m.Posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.Posts), nil
}

// MockCommentRepository is an in-memory CommentRepository with sequential ids
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    []models.Comment
	nextID      int64
	InsertError error
	QueryError  error
	CreateCalls int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{nextID: 1}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	comment.ID = m.nextID
	m.nextID++
	m.Comments = append(m.Comments, *comment)
	return nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}
	comments := []models.Comment{}
	for _, c := range m.Comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.Comments), nil
}
