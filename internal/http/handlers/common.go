package handlers

import (
	"net/http"
	"time"

	"travelbuddies/internal/catalog"
	"travelbuddies/internal/http/middleware"
	"travelbuddies/internal/leads"
	"travelbuddies/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers holds what the routes share for the life of the process.
type Handlers struct {
	Catalog   *catalog.Catalog
	Store     services.LeadStore
	Notifier  services.Notifier
	Fallbacks *services.FallbackLog
	Sessions  *leads.Sessions
	Remote    leads.Submitter
	Admin     AdminConfig
}

type AdminConfig struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
}

func (h *Handlers) leadService(c *gin.Context) services.LeadService {
	return services.LeadService{
		Catalog:   h.Catalog,
		Store:     h.Store,
		Notifier:  h.Notifier,
		RequestID: middleware.GetRequestID(c),
	}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
