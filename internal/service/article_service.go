package service

import (
	"context"
	"fmt"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	log      zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(articles repository.ArticleRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// List returns articles newest first. A zero limit means the default page size.
func (s *articleService) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	if filter.Limit == 0 {
		filter.Limit = models.DefaultListLimit
	}
	if errs := validation.ValidateArticleFilter(&filter); len(errs) > 0 {
		return nil, errs
	}

	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// GetByID returns the article or ErrArticleNotFound
func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Create validates and stores a new article
func (s *articleService) Create(ctx context.Context, req *models.ArticleCreate) (*models.Article, error) {
	if errs := validation.ValidateArticleCreate(req); len(errs) > 0 {
		return nil, errs
	}

	article := &models.Article{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.Info().Int64("article_id", article.ID).Str("author", article.Author).Msg("Article created")
	return article, nil
}

// Update applies a partial update; fields left nil keep their stored value
func (s *articleService) Update(ctx context.Context, id int64, req *models.ArticleUpdate) (*models.Article, error) {
	if errs := validation.ValidateArticleUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	article, err := s.articles.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update article %d: %w", id, err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	s.log.Info().Int64("article_id", id).Msg("Article updated")
	return article, nil
}

// Delete removes an article and its comments. It reports whether the
// article existed.
func (s *articleService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete article %d: %w", id, err)
	}
	if deleted {
		s.log.Info().Int64("article_id", id).Msg("Article deleted")
	}
	return deleted, nil
}

// IncrementLikes adds one like and returns the updated article
func (s *articleService) IncrementLikes(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.articles.IncrementLikes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("like article %d: %w", id, err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	s.log.Debug().Int64("article_id", id).Int("likes_count", article.LikesCount).Msg("Article liked")
	return article, nil
}
