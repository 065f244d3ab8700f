package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

const articleColumns = `id, title, content, author, likes_count, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List returns articles newest first, optionally filtered by a
// case-insensitive substring match on title, content or author
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	var (
		query strings.Builder
		args  []any
	)

	query.WriteString(`SELECT ` + articleColumns + ` FROM articles`)
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query.WriteString(` WHERE (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\' OR author LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	query.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return getArticle(ctx, r.db, id)
}

// Create inserts a new article and fills in its generated fields
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (title, content, author, likes_count, created_at) VALUES (?, ?, ?, 0, ?)`,
		article.Title, article.Content, article.Author, now,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	article.ID = id
	article.LikesCount = 0
	article.CreatedAt = now
	article.UpdatedAt = nil
	return nil
}

// Update overwrites the supplied fields in a single statement and returns
// the stored article
func (r *articleRepo) Update(ctx context.Context, id int64, update *models.ArticleUpdate) (*models.Article, error) {
	if update.Title == nil && update.Content == nil {
		return r.GetByID(ctx, id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE articles SET title = COALESCE(?, title), content = COALESCE(?, content), updated_at = ? WHERE id = ?`,
		nullString(update.Title), nullString(update.Content), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}

	article, err := getArticle(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the article together with its comments and like events in
// one transaction
func (r *articleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE article_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete article comments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE article_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete article likes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// IncrementLikes adds one to the like counter, records the like event and
// returns the updated article
func (r *articleRepo) IncrementLikes(ctx context.Context, id int64) (*models.Article, error) {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE articles SET likes_count = likes_count + 1, updated_at = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("increment likes: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO likes (article_id, created_at) VALUES (?, ?)`, id, now); err != nil {
		return nil, fmt.Errorf("record like: %w", err)
	}

	article, err := getArticle(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE id = ?)", id).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// StreamAll streams all articles for export in insertion order. Rows are
// read a page at a time so no connection is held while callback runs.
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	var afterID int64
	for {
		page, err := r.streamPage(ctx, afterID)
		if err != nil {
			return err
		}
		for _, article := range page {
			if err := callback(article); err != nil {
				return err
			}
		}
		if len(page) < streamPageSize {
			return nil
		}
		afterID = page[len(page)-1].ID
	}
}

func (r *articleRepo) streamPage(ctx context.Context, afterID int64) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id > ? ORDER BY id LIMIT ?`,
		afterID, streamPageSize,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := make([]*models.Article, 0, streamPageSize)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		page = append(page, article)
	}
	return page, rows.Err()
}

func getArticle(ctx context.Context, q queryer, id int64) (*models.Article, error) {
	row := q.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

func scanArticle(s rowScanner) (*models.Article, error) {
	var article models.Article
	var updatedAt sql.NullTime

	err := s.Scan(
		&article.ID, &article.Title, &article.Content, &article.Author,
		&article.LikesCount, &article.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		article.UpdatedAt = &t
	}
	return &article, nil
}

// escapeLike makes %, _ and the escape character itself match literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
