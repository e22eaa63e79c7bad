package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travelbuddies/internal/domain"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/http/middleware"
	"travelbuddies/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/admin/login
func (h *Handlers) AdminLogin(c *gin.Context) {
	if h.Admin.PasswordHash == "" || len(h.Admin.Secret) == 0 {
		respondError(c, http.StatusServiceUnavailable, "admin_disabled", "admin inbox disabled", nil)
		return
	}
	var req adminLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	reqID := middleware.GetRequestID(c)
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(req.Username)), []byte(h.Admin.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.Admin.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		utils.LogWarn(reqID, "admin", "login", "rejected", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	ttl := h.Admin.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	token, err := middleware.IssueAdminToken(h.Admin.Secret, h.Admin.Username, ttl, time.Now())
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "issue token", Err: err})
		return
	}
	utils.LogEvent(reqID, "admin", "login", "token issued")
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(ttl.Seconds())})
}

// GET /api/admin/leads?kind=&limit=
func (h *Handlers) AdminLeads(c *gin.Context) {
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: "limit must be a positive integer", Err: err})
			return
		}
		limit = n
	}
	out, err := h.leadService(c).RecentLeads(c.Request.Context(), c.Query("kind"), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if out == nil {
		out = []models.Lead{}
	}
	c.JSON(http.StatusOK, gin.H{"leads": out, "count": len(out)})
}

// GET /api/admin/fallbacks
func (h *Handlers) AdminFallbacks(c *gin.Context) {
	events := []models.FallbackEvent{}
	if h.Fallbacks != nil {
		events = h.Fallbacks.Recent()
	}
	c.JSON(http.StatusOK, gin.H{"fallbacks": events, "count": len(events)})
}
