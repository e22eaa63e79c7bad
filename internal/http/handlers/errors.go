package handlers

import (
	"errors"
	"net/http"

	"travelbuddies/internal/domain"
	"travelbuddies/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var details any
		var ve domain.ValidationError
		if errors.As(err, &ve) && ve.Field != "" {
			details = gin.H{"field": ve.Field}
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnavailable(err):
		_ = c.Error(err)
		respondError(c, http.StatusServiceUnavailable, "unavailable", err.Error(), nil)
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
