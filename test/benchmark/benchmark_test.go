package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/blog-api/internal/api"
	"github.com/blog-api/internal/mocks"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type alwaysHealthy struct{}

func (alwaysHealthy) HealthCheck(context.Context) error { return nil }

// seededServices returns services over mocks holding posts posts with
// commentsPerPost comments each
func seededServices(b *testing.B, posts, commentsPerPost int) *service.Services {
	b.Helper()
	repos := &repository.Repositories{
		Post:    mocks.NewMockPostRepository(),
		Comment: mocks.NewMockCommentRepository(),
	}
	services := service.NewServices(repos, zerolog.Nop())

	ctx := context.Background()
	for i := 0; i < posts; i++ {
		post, err := services.Post.CreatePost(ctx, models.PostInput{Body: "post " + strconv.Itoa(i)})
		if err != nil {
			b.Fatal(err)
		}
		for j := 0; j < commentsPerPost; j++ {
			_, err := services.Post.CreateComment(ctx, models.CommentInput{Body: "comment", PostID: &post.ID})
			if err != nil {
				b.Fatal(err)
			}
		}
	}
	return services
}

// BenchmarkGetPostWithComments benchmarks the combined read through the router
func BenchmarkGetPostWithComments(b *testing.B) {
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(seededServices(b, 100, 20), alwaysHealthy{}, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/post/"+strconv.Itoa(i%100+1), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

// BenchmarkCreatePost benchmarks request validation plus insert
func BenchmarkCreatePost(b *testing.B) {
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(seededServices(b, 0, 0), alwaysHealthy{}, zerolog.Nop())
	body := `{"body":"` + strings.Repeat("x", 200) + `"}`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "posts/sec")
}

// BenchmarkCreateCommentParallel benchmarks concurrent comment creation on one post
func BenchmarkCreateCommentParallel(b *testing.B) {
	services := seededServices(b, 1, 0)
	postID := int64(1)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := services.Post.CreateComment(ctx, models.CommentInput{Body: "c", PostID: &postID}); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
