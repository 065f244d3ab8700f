package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[int64]*models.Article
	Likes    map[int64]int // like events per article
	NextID   int64
	Err      error // returned by every method when set
	Now      func() time.Time
	Comments *MockCommentRepository // cascade target for Delete, optional
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		Likes:    make(map[int64]int),
		NextID:   1,
		Now:      sequentialClock(),
	}
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	term := strings.ToLower(filter.Search)
	matched := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if term == "" ||
			strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Content), term) ||
			strings.Contains(strings.ToLower(a.Author), term) {
			matched = append(matched, copyArticle(a))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Skip >= len(matched) {
		return []*models.Article{}, nil
	}
	matched = matched[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	return copyArticle(a), nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	article.ID = m.NextID
	m.NextID++
	article.LikesCount = 0
	article.CreatedAt = m.Now()
	article.UpdatedAt = nil
	m.Articles[article.ID] = copyArticle(article)
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id int64, update *models.ArticleUpdate) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	if update.Title == nil && update.Content == nil {
		return copyArticle(a), nil
	}
	if update.Title != nil {
		a.Title = *update.Title
	}
	if update.Content != nil {
		a.Content = *update.Content
	}
	now := m.Now()
	a.UpdatedAt = &now
	return copyArticle(a), nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	delete(m.Likes, id)
	if m.Comments != nil {
		for cid, c := range m.Comments.Comments {
			if c.ArticleID == id {
				delete(m.Comments.Comments, cid)
			}
		}
	}
	return true, nil
}

func (m *MockArticleRepository) IncrementLikes(ctx context.Context, id int64) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	a.LikesCount++
	m.Likes[id]++
	now := m.Now()
	a.UpdatedAt = &now
	return copyArticle(a), nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Articles), nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	if m.Err != nil {
		return m.Err
	}
	all, _ := m.List(ctx, models.ArticleFilter{})
	for i := len(all) - 1; i >= 0; i-- {
		if err := callback(all[i]); err != nil {
			return err
		}
	}
	return nil
}

// MockCommentRepository is an in-memory implementation of CommentRepository
type MockCommentRepository struct {
	Comments map[int64]*models.Comment
	NextID   int64
	Err      error
	Now      func() time.Time
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
		NextID:   1,
		Now:      sequentialClock(),
	}
}

func (m *MockCommentRepository) sorted(keep func(*models.Comment) bool) []*models.Comment {
	out := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if keep(c) {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(func(c *models.Comment) bool { return c.ArticleID == articleID }), nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	comment.ID = m.NextID
	m.NextID++
	comment.LikesCount = 0
	comment.CreatedAt = m.Now()
	cc := *comment
	m.Comments[comment.ID] = &cc
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Comments), nil
}

func (m *MockCommentRepository) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	if m.Err != nil {
		return m.Err
	}
	for _, c := range m.sorted(func(*models.Comment) bool { return true }) {
		if err := callback(c); err != nil {
			return err
		}
	}
	return nil
}

// NewMockRepositories wires article and comment mocks together so article
// deletion cascades to comments
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockCommentRepository) {
	articles := NewMockArticleRepository()
	comments := NewMockCommentRepository()
	articles.Comments = comments
	return &repository.Repositories{Article: articles, Comment: comments}, articles, comments
}

func copyArticle(a *models.Article) *models.Article {
	c := *a
	if a.UpdatedAt != nil {
		t := *a.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// sequentialClock returns strictly increasing timestamps so ordering by
// creation time is deterministic in tests
func sequentialClock() func() time.Time {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
