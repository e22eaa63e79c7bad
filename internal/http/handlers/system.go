package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"leadStore": h.Store != nil && h.Store.Enabled(),
		"notifier":  h.Notifier != nil,
	})
}

// Site returns the agency profile used in the page header and footer.
func (h *Handlers) Site(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Agency())
}
