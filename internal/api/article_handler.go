package api

import (
	"net/http"
	"time"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	timeout  time.Duration
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, timeout time.Duration, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		timeout:  timeout,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /articles?search=&skip=&limit=
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var filter models.ArticleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	articles, err := h.services.Article.List(ctx, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetArticle handles GET /articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.services.Article.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateArticle handles POST /articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.ArticleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.services.Article.Create(ctx, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle handles PUT /articles/:id. Omitted fields keep their value.
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.ArticleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.services.Article.Update(ctx, id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	deleted, err := h.services.Article.Delete(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !deleted {
		respondError(c, h.log, service.ErrArticleNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikeArticle handles POST /articles/:id/like
func (h *ArticleHandler) LikeArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.services.Article.IncrementLikes(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}
