package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	ArticleID  int64     `json:"article_id" db:"article_id"`
	Author     string    `json:"author" db:"author"`
	Content    string    `json:"content" db:"content"`
	LikesCount int       `json:"likes_count" db:"likes_count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CommentCreate is the payload for creating a comment
type CommentCreate struct {
	ArticleID int64  `json:"article_id" binding:"required,gt=0"`
	Author    string `json:"author" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// CommentFilter selects the comments of one article. ArticleID is a pointer
// so that only a missing parameter is rejected; any integer is accepted.
type CommentFilter struct {
	ArticleID *int64 `form:"article_id" binding:"required"`
}
