package api

import (
	"errors"
	"net/http"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/blog-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const internalErrorMessage = "internal server error"

// PostHandler handles post and comment endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	validation.Setup()
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// CreatePost handles POST /post
func (h *PostHandler) CreatePost(c *gin.Context) {
	var in models.PostInput
	if err := validation.BindJSON(c, &in); err != nil {
		h.fail(c, "create_post", err)
		return
	}

	post, err := h.services.Post.CreatePost(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create_post", err, "body_length", len(in.Body))
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts handles GET /post
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.services.Post.ListPosts(c.Request.Context())
	if err != nil {
		h.fail(c, "list_posts", err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreateComment handles POST /comment
func (h *PostHandler) CreateComment(c *gin.Context) {
	var in models.CommentInput
	if err := validation.BindJSON(c, &in); err != nil {
		h.fail(c, "create_comment", err)
		return
	}

	comment, err := h.services.Post.CreateComment(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create_comment", err, "post_id", *in.PostID)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /post/:post_id/comments.
// An unknown post id answers 200 with an empty list, unlike GetPostWithComments.
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, err := validation.ParseID("post_id", c.Param("post_id"))
	if err != nil {
		h.fail(c, "list_comments", err)
		return
	}

	comments, err := h.services.Post.ListComments(c.Request.Context(), postID)
	if err != nil {
		h.fail(c, "list_comments", err, "post_id", postID)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetPostWithComments handles GET /post/:post_id
func (h *PostHandler) GetPostWithComments(c *gin.Context) {
	postID, err := validation.ParseID("post_id", c.Param("post_id"))
	if err != nil {
		h.fail(c, "get_post", err)
		return
	}

	result, err := h.services.Post.GetPostWithComments(c.Request.Context(), postID)
	if err != nil {
		h.fail(c, "get_post", err, "post_id", postID)
		return
	}

	c.JSON(http.StatusOK, result)
}

// fail maps err to a response. Validation errors give 422, a missing post
// gives 404, and anything else is logged with its parameters and hidden
// behind a generic 500.
func (h *PostHandler) fail(c *gin.Context, op string, err error, params ...interface{}) {
	var verr *validation.Errors
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "validation failed",
			Details: verr.Fields,
		})
		return
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFound.Error()})
		return
	}

	h.log.Error().
		Err(err).
		Str("operation", op).
		Fields(params).
		Str("request_id", c.GetString(requestIDHeader)).
		Msg("Request failed")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: internalErrorMessage})
}
