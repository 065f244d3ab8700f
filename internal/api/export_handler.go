package api

import (
	"net/http"
	"time"

	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	timeout  time.Duration
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler. timeout bounds a whole
// export, including writes to the client.
func NewExportHandler(services *service.Services, timeout time.Duration, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		timeout:  timeout,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /exports?resource=...&format=...
// Streams the export directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	resource := c.Query("resource")
	if resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource parameter is required (articles, comments)"})
		return
	}
	if resource != "articles" && resource != "comments" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource must be one of: articles, comments"})
		return
	}

	format := c.DefaultQuery("format", service.FormatNDJSON)
	if !service.ValidFormat(format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json"})
		return
	}

	h.log.Info().
		Str("resource", resource).
		Str("format", format).
		Str("request_id", c.GetString(requestIDKey)).
		Msg("Starting streaming export")

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	var err error
	switch resource {
	case "articles":
		err = h.services.Export.StreamArticles(ctx, c.Writer, format)
	case "comments":
		err = h.services.Export.StreamComments(ctx, c.Writer, format)
	}

	if err != nil {
		// Headers are already sent once streaming has started
		h.log.Error().Err(err).Str("resource", resource).Msg("Export failed")
	}
}
