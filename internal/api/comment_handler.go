package api

import (
	"net/http"
	"time"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	timeout  time.Duration
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, timeout time.Duration, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		timeout:  timeout,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /comments?article_id=
func (h *CommentHandler) ListComments(c *gin.Context) {
	var filter models.CommentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	comments, err := h.services.Comment.ListByArticle(ctx, *filter.ArticleID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req models.CommentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	comment, err := h.services.Comment.Create(ctx, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	deleted, err := h.services.Comment.Delete(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
