package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed origins. "*" opens the API to any origin without
// credentials; an empty list disables cross-origin access.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID", "X-Form-Session"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	switch {
	case slices.Contains(allowedOrigins, "*"):
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	case len(allowedOrigins) == 0:
		return func(c *gin.Context) { c.Next() }
	default:
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}
