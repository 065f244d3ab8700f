package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/blog-api/internal/service"
	"github.com/blog-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func init() {
	// Report json/form names in binding errors instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

// respondValidation writes a 422 with field-level details
func respondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": errs,
	})
}

// respondBindError translates a gin binding failure into a validation response
func respondBindError(c *gin.Context, err error) {
	respondValidation(c, bindingErrors(err))
}

func bindingErrors(err error) validation.Errors {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		numErr    *strconv.NumError
	)

	switch {
	case errors.As(err, &fieldErrs):
		out := make(validation.Errors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, validation.ValidationError{
				Field:   fe.Field(),
				Message: describeTag(fe),
				Value:   fe.Value(),
			})
		}
		return out
	case errors.As(err, &typeErr):
		return validation.Errors{{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return validation.Errors{{Field: "body", Message: "must be a valid JSON object"}}
	case errors.As(err, &numErr):
		return validation.Errors{{Field: "query", Message: "must be an integer", Value: numErr.Num}}
	default:
		return validation.Errors{{Field: "body", Message: err.Error()}}
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		respondValidation(c, verrs)
	case errors.Is(err, service.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	default:
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondValidation(c, validation.Errors{{
			Field:   name,
			Message: "must be a positive integer",
			Value:   raw,
		}})
		return 0, false
	}
	return id, true
}
