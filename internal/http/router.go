package api

import (
	stdhttp "net/http"

	intconfig "travelbuddies/internal/config"
	h "travelbuddies/internal/http/handlers"
	"travelbuddies/internal/http/middleware"
	"travelbuddies/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", hs.Index)

	// Form submissions are metered per visitor. The intake endpoints are
	// metered too but let the loopback calls of the form workflow through.
	formLimiter := middleware.NewRateLimiter(env.LeadRatePerMinute)
	intakeLimiter := middleware.NewRateLimiter(env.LeadRatePerMinute)
	intakeLimiter.SkipLoopback = true
	loginLimiter := middleware.NewRateLimiter(env.LeadRatePerMinute)

	forms := r.Group("/forms", formLimiter.Limit())
	forms.POST("/booking", hs.SubmitBookingForm)
	forms.POST("/enquiry", hs.SubmitEnquiryForm)

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/site", hs.Site)

		// Catalog
		trips := api.Group("/trips")
		trips.GET("/completed", hs.CompletedTrips)
		trips.GET("/upcoming", hs.UpcomingTrips)

		itineraries := api.Group("/itineraries")
		itineraries.GET("", hs.Itineraries)
		itineraries.GET("/:id/print", hs.PrintItinerary)
		itineraries.GET("/:id/pdf", hs.ItineraryPDF)

		// Lead intake
		intake := api.Group("", intakeLimiter.Limit())
		intake.POST("/send-booking", hs.SendBooking)
		intake.POST("/send-enquiry", hs.SendEnquiry)

		// Operator inbox
		admin := api.Group("/admin")
		admin.POST("/login", loginLimiter.Limit(), hs.AdminLogin)
		inbox := admin.Group("", middleware.AdminAuth(hs.Admin.Secret), middleware.RequireRoles(middleware.RoleAdmin))
		inbox.GET("/leads", hs.AdminLeads)
		inbox.GET("/fallbacks", hs.AdminFallbacks)
	}

	return r
}
