package handlers

import (
	"net/http"

	"travelbuddies/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/send-booking
func (h *Handlers) SendBooking(c *gin.Context) {
	var p models.BookingPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	lead, err := h.leadService(c).AcceptBooking(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": lead.ID, "kind": lead.Kind})
}

// POST /api/send-enquiry
func (h *Handlers) SendEnquiry(c *gin.Context) {
	var p models.EnquiryPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	lead, err := h.leadService(c).AcceptEnquiry(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": lead.ID, "kind": lead.Kind})
}
