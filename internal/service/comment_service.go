package service

import (
	"context"
	"fmt"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// ListByArticle returns the comments of an article, oldest first. An unknown
// article simply has no comments.
func (s *commentService) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	comments, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments for article %d: %w", articleID, err)
	}
	return comments, nil
}

// Create validates the comment, checks that its article exists and stores it
func (s *commentService) Create(ctx context.Context, req *models.CommentCreate) (*models.Comment, error) {
	if errs := validation.ValidateCommentCreate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.articles.Exists(ctx, req.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("check article %d: %w", req.ArticleID, err)
	}
	if !exists {
		return nil, validation.Errors{{
			Field:   "article_id",
			Message: "referenced article does not exist",
			Value:   req.ArticleID,
		}}
	}

	comment := &models.Comment{
		ArticleID: req.ArticleID,
		Author:    req.Author,
		Content:   req.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Int64("article_id", comment.ArticleID).
		Msg("Comment created")
	return comment, nil
}

// Delete removes a comment and reports whether it existed
func (s *commentService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete comment %d: %w", id, err)
	}
	if deleted {
		s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	}
	return deleted, nil
}
