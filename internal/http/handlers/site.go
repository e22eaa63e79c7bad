package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/leads"
	"travelbuddies/internal/listing"
	"travelbuddies/internal/utils"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type sortOption struct {
	Key   listing.SortKey
	Label string
}

var sortOptions = []sortOption{
	{listing.SortByDate, "Date (soonest)"},
	{listing.SortByPriceLow, "Price: low to high"},
	{listing.SortByPriceHigh, "Price: high to low"},
}

type pageData struct {
	Agency         models.Agency
	Completed      []models.CompletedTrip
	Upcoming       []listing.UpcomingView
	Itineraries    []models.Itinerary
	Query          string
	ItineraryQuery string
	Sort           listing.SortKey
	SortOptions    []sortOption
	Modal          leads.ModalState
	Booking        leads.BookingForm
	Year           int
}

// GET /?q=&sort=&iq=&modal=booking|enquiry&trip=
func (h *Handlers) Index(c *gin.Context) {
	q := c.Query("q")
	key := listing.ParseSortKey(c.Query("sort"))
	iq := c.Query("iq")

	data := pageData{
		Agency:         h.Catalog.Agency(),
		Completed:      h.Catalog.Completed(),
		Upcoming:       listing.Views(listing.Upcoming(h.Catalog.Upcoming(), q, key)),
		Itineraries:    listing.FilterItineraries(h.Catalog.Itineraries(), iq),
		Query:          q,
		ItineraryQuery: iq,
		Sort:           key,
		SortOptions:    sortOptions,
		Modal:          h.modalFromQuery(c),
		Year:           utils.NowUTC().Year(),
	}
	if data.Modal.Kind == leads.ModalBooking {
		data.Booking = leads.NewBookingForm(data.Modal.TripID, data.Modal.TripName)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "failed to render page", nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// modalFromQuery opens the booking form only for a trip that exists.
func (h *Handlers) modalFromQuery(c *gin.Context) leads.ModalState {
	switch strings.ToLower(strings.TrimSpace(c.Query("modal"))) {
	case string(leads.ModalBooking):
		trip, err := h.Catalog.UpcomingByID(strings.TrimSpace(c.Query("trip")))
		if err != nil {
			return leads.CloseModal()
		}
		return leads.OpenBooking(trip.ID, trip.Title)
	case string(leads.ModalEnquiry):
		return leads.OpenEnquiry()
	default:
		return leads.CloseModal()
	}
}
