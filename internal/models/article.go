package models

import (
	"time"
)

// Article represents a blog article
type Article struct {
	ID         int64      `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Content    string     `json:"content" db:"content"`
	Author     string     `json:"author" db:"author"`
	LikesCount int        `json:"likes_count" db:"likes_count"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" db:"updated_at"` // nil until first modification
}

// Field limits shared by validation and request binding
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 100
)

// Pagination bounds for article listing
const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)

// ArticleCreate is the payload for creating an article
type ArticleCreate struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

// ArticleUpdate is a partial update; nil fields are left untouched
type ArticleUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// ArticleFilter holds search and pagination options for listing articles
type ArticleFilter struct {
	Search string `form:"search"`
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=100"`
}
