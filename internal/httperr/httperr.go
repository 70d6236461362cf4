package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidationFailed = "validation_failed"
	CodeInvalidRequest   = "invalid_request"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeInternal         = "internal_error"
)

// FieldError lets clients attach an error to a form field without parsing messages.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HTTPError struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func Write(c *gin.Context, status int, code, message string, fields ...FieldError) {
	if len(fields) == 0 {
		fields = []FieldError{{Code: code, Message: message}}
	}
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
		Errors:  fields,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// WriteBusiness renders a BusinessError using the shared status table.
func WriteBusiness(c *gin.Context, be BusinessError) {
	status := StatusFor(be.Code)
	message := MessageFor(be.Code)

	fields := be.Fields
	if len(fields) == 0 {
		fields = []FieldError{{Field: be.Field, Code: be.Code, Message: message}}
	}
	for i := range fields {
		if fields[i].Message == "" {
			fields[i].Message = MessageFor(fields[i].Code)
		}
	}

	Write(c, status, be.Code, message, fields...)
}
