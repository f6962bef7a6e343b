// errors.go - Error translation: the one place errors become HTTP bodies

package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"go-commands-backend/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError names one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode  int          `json:"statusCode"`
	Error       string       `json:"error"`
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

const (
	validationMessage = "validation failed for one or more fields"
	fallbackMessage   = "unexpected error"
)

// NewErrorResponse fills status, reason phrase and timestamp.
func NewErrorResponse(status int, message string, fields []FieldError) ErrorResponse {
	return ErrorResponse{
		StatusCode:  status,
		Error:       http.StatusText(status),
		Message:     message,
		Timestamp:   time.Now().UTC(),
		FieldErrors: fields,
	}
}

// ErrorHandler renders the last error a handler recorded with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		status, body := Translate(c.Errors.Last().Err)
		if status >= http.StatusInternalServerError {
			log.Printf("[error] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, RequestIDFrom(c), c.Errors.Last().Err)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Translate maps an error to its status and body.
func Translate(err error) (int, ErrorResponse) {
	var apiErr *apierrors.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, NewErrorResponse(apiErr.Status, apiErr.Message, nil)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, validationMessage, fields)
	}

	msg := err.Error()
	if msg == "" {
		msg = fallbackMessage
	}
	return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, msg, nil)
}

// Recovery turns panics into an opaque 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[panic] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, RequestIDFrom(c), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			NewErrorResponse(http.StatusInternalServerError, apierrors.InternalMessage, nil))
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "min":
		return "size must be at least " + fe.Param()
	case "max":
		return "size must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "numeric", "number":
		return "must be a number"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
