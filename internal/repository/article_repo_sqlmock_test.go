package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
)

func newMockRepos(t *testing.T) (*repository.Repositories, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { mockDb.Close() })

	return repository.New(&database.DB{DB: mockDb}), sqlMock
}

func TestArticleRepo_Delete_RollsBackWhenCommentDeleteFails(t *testing.T) {
	repos, sqlMock := newMockRepos(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE article_id = ?")).
		WithArgs(int64(7)).
		WillReturnError(errors.New("disk I/O error"))
	sqlMock.ExpectRollback()

	deleted, err := repos.Article.Delete(context.Background(), 7)
	if err == nil {
		t.Fatal("Expected error from failed comment delete")
	}
	if deleted {
		t.Error("nothing should be reported as deleted")
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestArticleRepo_Delete_MissingArticleRollsBack(t *testing.T) {
	repos, sqlMock := newMockRepos(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE article_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE article_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectRollback()

	deleted, err := repos.Article.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("missing article should not be reported as deleted")
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestArticleRepo_Delete_CommitsCascade(t *testing.T) {
	repos, sqlMock := newMockRepos(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE article_id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE article_id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	deleted, err := repos.Article.Delete(context.Background(), 5)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("Expected article to be deleted")
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestArticleRepo_IncrementLikes_RollsBackWhenLikeInsertFails(t *testing.T) {
	repos, sqlMock := newMockRepos(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET likes_count = likes_count + 1")).
		WithArgs(sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes")).
		WillReturnError(errors.New("database is locked"))
	sqlMock.ExpectRollback()

	article, err := repos.Article.IncrementLikes(context.Background(), 9)
	if err == nil {
		t.Fatal("Expected error when the like event cannot be recorded")
	}
	if article != nil {
		t.Errorf("Expected no article, got %+v", article)
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestArticleRepo_IncrementLikes_ReturnsUpdatedRow(t *testing.T) {
	repos, sqlMock := newMockRepos(t)
	created := time.Date(2025, 5, 27, 10, 6, 56, 0, time.UTC)
	updated := created.Add(time.Hour)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET likes_count = likes_count + 1")).
		WithArgs(sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes (article_id, created_at) VALUES (?, ?)")).
		WithArgs(int64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, author, likes_count, created_at, updated_at FROM articles WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlMock.NewRows([]string{"id", "title", "content", "author", "likes_count", "created_at", "updated_at"}).
			AddRow(int64(1), "Test", "Content", "Author", 3, created, updated))
	sqlMock.ExpectCommit()

	article, err := repos.Article.IncrementLikes(context.Background(), 1)
	if err != nil {
		t.Fatalf("IncrementLikes failed: %v", err)
	}
	if article.LikesCount != 3 {
		t.Errorf("Expected likes_count 3, got %d", article.LikesCount)
	}
	if article.UpdatedAt == nil || !article.UpdatedAt.Equal(updated) {
		t.Errorf("Expected updated_at %v, got %v", updated, article.UpdatedAt)
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestArticleRepo_List_SearchBindsEscapedPattern(t *testing.T) {
	repos, sqlMock := newMockRepos(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("WHERE (title LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\' OR author LIKE ? ESCAPE '\\') ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?")).
		WithArgs(`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`, 10, 20).
		WillReturnRows(sqlMock.NewRows([]string{"id", "title", "content", "author", "likes_count", "created_at", "updated_at"}))

	articles, err := repos.Article.List(context.Background(), models.ArticleFilter{Search: "50%_off", Skip: 20, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected no articles, got %d", len(articles))
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
