package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrArticleNotFound is returned when the target article does not exist
var ErrArticleNotFound = errors.New("article not found")

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Create(ctx context.Context, req *models.ArticleCreate) (*models.Article, error)
	Update(ctx context.Context, id int64, req *models.ArticleUpdate) (*models.Article, error)
	Delete(ctx context.Context, id int64) (bool, error)
	IncrementLikes(ctx context.Context, id int64) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error)
	Create(ctx context.Context, req *models.CommentCreate) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error
	StreamComments(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	Export  ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Article: newArticleService(repos.Article, log),
		Comment: newCommentService(repos.Comment, repos.Article, log),
		Export:  newExportService(repos, log),
	}
}
