package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// Export formats
const (
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

// flushEvery is how many records are written between flushes
const flushEvery = 100

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// ValidFormat reports whether format can be streamed
func ValidFormat(format string) bool {
	return format == FormatNDJSON || format == FormatJSON
}

// StreamArticles streams every article in the specified format
func (s *exportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("unsupported format: %s", format)
	}
	s.log.Info().Str("format", format).Msg("Starting articles export")

	count, err := streamRecords(w, "articles", format, func(emit func(*models.Article) error) error {
		return s.repos.Article.StreamAll(ctx, emit)
	})

	s.log.Info().Int("count", count).Msg("Articles export completed")
	return err
}

// StreamComments streams every comment in the specified format
func (s *exportService) StreamComments(ctx context.Context, w http.ResponseWriter, format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("unsupported format: %s", format)
	}
	s.log.Info().Str("format", format).Msg("Starting comments export")

	count, err := streamRecords(w, "comments", format, func(emit func(*models.Comment) error) error {
		return s.repos.Comment.StreamAll(ctx, emit)
	})

	s.log.Info().Int("count", count).Msg("Comments export completed")
	return err
}

// GetCount returns count for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "articles":
		return s.repos.Article.Count(ctx)
	case "comments":
		return s.repos.Comment.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}

// streamRecords writes records as NDJSON lines or as a single JSON array,
// flushing periodically so large exports reach the client incrementally
func streamRecords[T any](w http.ResponseWriter, name, format string, stream func(emit func(T) error) error) (int, error) {
	if format == FormatNDJSON {
		w.Header().Set("Content-Type", "application/x-ndjson")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+name+"."+format)

	flusher, _ := w.(http.Flusher)
	count := 0

	if format == FormatJSON {
		w.Write([]byte("["))
	}

	err := stream(func(record T) error {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if format == FormatJSON && count > 0 {
			w.Write([]byte(","))
		}
		w.Write(data)
		if format == FormatNDJSON {
			w.Write([]byte("\n"))
		}
		count++

		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	// A failed JSON export is left unterminated so clients cannot mistake
	// it for a complete array
	if format == FormatJSON && err == nil {
		w.Write([]byte("]"))
	}
	return count, err
}
