package mocks

import (
	"context"
	"net/http"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
)

// MockArticleService is a mock implementation of ArticleService. Each
// method delegates to its Func field when set and otherwise returns the
// zero value.
type MockArticleService struct {
	ListFunc           func(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Article, error)
	CreateFunc         func(ctx context.Context, req *models.ArticleCreate) (*models.Article, error)
	UpdateFunc         func(ctx context.Context, id int64, req *models.ArticleUpdate) (*models.Article, error)
	DeleteFunc         func(ctx context.Context, id int64) (bool, error)
	IncrementLikesFunc func(ctx context.Context, id int64) (*models.Article, error)

	ListCalls []models.ArticleFilter
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	m.ListCalls = append(m.ListCalls, filter)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, service.ErrArticleNotFound
}

func (m *MockArticleService) Create(ctx context.Context, req *models.ArticleCreate) (*models.Article, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Article{ID: 1, Title: req.Title, Content: req.Content, Author: req.Author}, nil
}

func (m *MockArticleService) Update(ctx context.Context, id int64, req *models.ArticleUpdate) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, service.ErrArticleNotFound
}

func (m *MockArticleService) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockArticleService) IncrementLikes(ctx context.Context, id int64) (*models.Article, error) {
	if m.IncrementLikesFunc != nil {
		return m.IncrementLikesFunc(ctx, id)
	}
	return nil, service.ErrArticleNotFound
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListByArticleFunc func(ctx context.Context, articleID int64) ([]*models.Comment, error)
	CreateFunc        func(ctx context.Context, req *models.CommentCreate) (*models.Comment, error)
	DeleteFunc        func(ctx context.Context, id int64) (bool, error)
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	if m.ListByArticleFunc != nil {
		return m.ListByArticleFunc(ctx, articleID)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentService) Create(ctx context.Context, req *models.CommentCreate) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Comment{ID: 1, ArticleID: req.ArticleID, Author: req.Author, Content: req.Content}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamArticlesFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	StreamCommentsFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Counts             map[string]int
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: map[string]int{
			"articles": 0,
			"comments": 0,
		},
	}
}

func (m *MockExportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamArticlesFunc != nil {
		return m.StreamArticlesFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) StreamComments(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamCommentsFunc != nil {
		return m.StreamCommentsFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.Counts[resource], nil
}
