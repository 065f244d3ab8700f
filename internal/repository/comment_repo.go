package repository

import (
	"context"
	"time"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

const commentColumns = `id, article_id, author, content, likes_count, created_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns the comments of one article, oldest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE article_id = ? ORDER BY created_at, id`,
		articleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Create inserts a new comment and fills in its generated fields
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (article_id, author, content, likes_count, created_at) VALUES (?, ?, ?, 0, ?)`,
		comment.ArticleID, comment.Author, comment.Content, now,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	comment.ID = id
	comment.LikesCount = 0
	comment.CreatedAt = now
	return nil
}

// Delete removes a comment and reports whether a row existed
func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

// StreamAll streams all comments for export in insertion order, one page
// at a time
func (r *commentRepo) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	var afterID int64
	for {
		page, err := r.streamPage(ctx, afterID)
		if err != nil {
			return err
		}
		for _, comment := range page {
			if err := callback(comment); err != nil {
				return err
			}
		}
		if len(page) < streamPageSize {
			return nil
		}
		afterID = page[len(page)-1].ID
	}
}

func (r *commentRepo) streamPage(ctx context.Context, afterID int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id > ? ORDER BY id LIMIT ?`,
		afterID, streamPageSize,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := make([]*models.Comment, 0, streamPageSize)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		page = append(page, comment)
	}
	return page, rows.Err()
}

func scanComment(s rowScanner) (*models.Comment, error) {
	var comment models.Comment
	err := s.Scan(
		&comment.ID, &comment.ArticleID, &comment.Author, &comment.Content,
		&comment.LikesCount, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
