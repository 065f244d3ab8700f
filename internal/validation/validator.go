package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blog-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a list of field-level validation errors. It implements error so
// services can return it alongside not-found and storage errors.
type Errors []ValidationError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateArticleCreate trims the article fields in place and validates them
func ValidateArticleCreate(article *models.ArticleCreate) Errors {
	var errors Errors

	article.Title = strings.TrimSpace(article.Title)
	article.Content = strings.TrimSpace(article.Content)
	article.Author = strings.TrimSpace(article.Author)

	errors = append(errors, checkText("title", article.Title, models.MaxTitleLength)...)
	errors = append(errors, checkText("content", article.Content, 0)...)
	errors = append(errors, checkText("author", article.Author, models.MaxAuthorLength)...)

	return errors
}

// ValidateArticleUpdate trims and validates only the fields that are present
func ValidateArticleUpdate(update *models.ArticleUpdate) Errors {
	var errors Errors

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
		errors = append(errors, checkText("title", title, models.MaxTitleLength)...)
	}
	if update.Content != nil {
		content := strings.TrimSpace(*update.Content)
		update.Content = &content
		errors = append(errors, checkText("content", content, 0)...)
	}

	return errors
}

// ValidateCommentCreate trims the comment fields in place and validates them
func ValidateCommentCreate(comment *models.CommentCreate) Errors {
	var errors Errors

	if comment.ArticleID <= 0 {
		errors = append(errors, ValidationError{Field: "article_id", Message: "article_id must be a positive integer", Value: comment.ArticleID})
	}

	comment.Author = strings.TrimSpace(comment.Author)
	comment.Content = strings.TrimSpace(comment.Content)

	errors = append(errors, checkText("author", comment.Author, models.MaxAuthorLength)...)
	errors = append(errors, checkText("content", comment.Content, 0)...)

	return errors
}

// ValidateArticleFilter checks pagination bounds
func ValidateArticleFilter(filter *models.ArticleFilter) Errors {
	var errors Errors

	if filter.Skip < 0 {
		errors = append(errors, ValidationError{Field: "skip", Message: "skip must be greater than or equal to 0", Value: filter.Skip})
	}
	if filter.Limit < 1 || filter.Limit > models.MaxListLimit {
		errors = append(errors, ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must be between 1 and %d", models.MaxListLimit),
			Value:   filter.Limit,
		})
	}

	return errors
}

// checkText rejects empty values and values longer than max runes; max <= 0
// means unbounded
func checkText(field, value string, max int) Errors {
	if value == "" {
		return Errors{{Field: field, Message: field + " must not be empty"}}
	}
	if max > 0 {
		if n := utf8.RuneCountInString(value); n > max {
			return Errors{{
				Field:   field,
				Message: fmt.Sprintf("%s must be at most %d characters (has %d)", field, max, n),
			}}
		}
	}
	return nil
}
