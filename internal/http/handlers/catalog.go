package handlers

import (
	"net/http"

	"travelbuddies/internal/http/middleware"
	"travelbuddies/internal/listing"
	"travelbuddies/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/completed?q=
func (h *Handlers) CompletedTrips(c *gin.Context) {
	trips := listing.FilterCompleted(h.Catalog.Completed(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
}

// GET /api/trips/upcoming?q=&sort=
func (h *Handlers) UpcomingTrips(c *gin.Context) {
	key := listing.ParseSortKey(c.Query("sort"))
	views := listing.Views(listing.Upcoming(h.Catalog.Upcoming(), c.Query("q"), key))
	c.JSON(http.StatusOK, gin.H{"trips": views, "count": len(views), "sort": key})
}

// GET /api/itineraries?q=
func (h *Handlers) Itineraries(c *gin.Context) {
	its := listing.FilterItineraries(h.Catalog.Itineraries(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"itineraries": its, "count": len(its)})
}

// GET /api/itineraries/:id/print
func (h *Handlers) PrintItinerary(c *gin.Context) {
	svc := services.ExportService{Catalog: h.Catalog, RequestID: middleware.GetRequestID(c)}
	page, err := svc.PrintableHTML(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// GET /api/itineraries/:id/pdf
func (h *Handlers) ItineraryPDF(c *gin.Context) {
	svc := services.ExportService{Catalog: h.Catalog, RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.PDF(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
