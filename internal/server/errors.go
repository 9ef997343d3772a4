package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/matthieukhl/shopfront/internal/service"
)

const internalErrorMessage = "internal server error"

// translateErrors turns the last error a handler attached with c.Error into
// the response. Validation errors become 400 with their message; anything
// else is logged and answered with a generic 500.
func (s *Server) translateErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var verr *service.ValidationError
		if errors.As(err, &verr) {
			if !c.Writer.Written() {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
			}
			return
		}

		loggerFor(c, s.logger).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		}
	}
}

// bindError describes a failed ShouldBindJSON as a validation error.
func bindError(err error) *service.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeField(fe))
		}
		return service.Invalid(strings.Join(msgs, "; "))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return service.Invalid(fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}

	return service.Invalid("Invalid request payload")
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be a date formatted YYYY-MM-DD", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
