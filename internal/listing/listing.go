// Package listing filters and orders the catalog views shown on the page.
// Every function is pure: inputs are never modified and equal inputs give equal outputs.
package listing

import (
	"cmp"
	"slices"
	"strings"

	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/utils"
)

type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
)

// ParseSortKey normalizes a user supplied key. Blank input means the page
// default (date); anything else is passed through so SortTrips can ignore it.
func ParseSortKey(raw string) SortKey {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SortByDate
	}
	return SortKey(raw)
}

// FilterTrips keeps trips whose title or short description contains query,
// case-insensitively. An empty query returns every trip in input order.
func FilterTrips(trips []models.UpcomingTrip, query string) []models.UpcomingTrip {
	out := make([]models.UpcomingTrip, 0, len(trips))
	for _, t := range trips {
		if utils.ContainsFold(t.Title, query) || utils.ContainsFold(t.ShortDesc, query) {
			out = append(out, t)
		}
	}
	return out
}

// FilterCompleted applies the FilterTrips rule to the completed gallery.
func FilterCompleted(trips []models.CompletedTrip, query string) []models.CompletedTrip {
	out := make([]models.CompletedTrip, 0, len(trips))
	for _, t := range trips {
		if utils.ContainsFold(t.Title, query) || utils.ContainsFold(t.ShortDesc, query) {
			out = append(out, t)
		}
	}
	return out
}

// SortTrips returns a new slice ordered by key. The sort is stable; an
// unrecognized key returns the input order.
func SortTrips(trips []models.UpcomingTrip, key SortKey) []models.UpcomingTrip {
	out := slices.Clone(trips)
	if out == nil {
		out = []models.UpcomingTrip{}
	}
	switch key {
	case SortByDate:
		slices.SortStableFunc(out, func(a, b models.UpcomingTrip) int {
			return compareStart(a, b)
		})
	case SortByPriceLow:
		slices.SortStableFunc(out, func(a, b models.UpcomingTrip) int {
			return cmp.Compare(a.PricePerPerson, b.PricePerPerson)
		})
	case SortByPriceHigh:
		slices.SortStableFunc(out, func(a, b models.UpcomingTrip) int {
			return cmp.Compare(b.PricePerPerson, a.PricePerPerson)
		})
	}
	return out
}

// compareStart orders by parsed start date; trips with an unparseable date go last.
func compareStart(a, b models.UpcomingTrip) int {
	ta, errA := utils.ParseDate(a.StartDate)
	tb, errB := utils.ParseDate(b.StartDate)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ta.Compare(tb)
}

// FilterItineraries keeps itineraries whose title, or any activity of any day,
// contains query case-insensitively.
func FilterItineraries(itineraries []models.Itinerary, query string) []models.Itinerary {
	out := make([]models.Itinerary, 0, len(itineraries))
	for _, it := range itineraries {
		if matchesItinerary(it, query) {
			out = append(out, it)
		}
	}
	return out
}

func matchesItinerary(it models.Itinerary, query string) bool {
	if utils.ContainsFold(it.Title, query) {
		return true
	}
	for _, day := range it.Schedule {
		for _, activity := range day.Activities {
			if utils.ContainsFold(activity, query) {
				return true
			}
		}
	}
	return false
}

// UpcomingView is a trip with its display labels resolved.
type UpcomingView struct {
	models.UpcomingTrip
	DateLabel    string `json:"dateLabel"`
	PriceLabel   string `json:"priceLabel"`
	FewSeatsLeft bool   `json:"fewSeatsLeft"`
}

// FewSeatsThreshold is the seat count at or below which the "only N seats left" badge shows.
const FewSeatsThreshold = 5

func FewSeatsLeft(t models.UpcomingTrip) bool {
	return t.SeatsLeft <= FewSeatsThreshold
}

// DateRangeLabel renders "15 Jun 2024 - 17 Jun 2024", or a single date for day trips.
func DateRangeLabel(t models.UpcomingTrip) string {
	start := utils.DateLabel(t.StartDate)
	if t.EndDate == "" || t.EndDate == t.StartDate {
		return start
	}
	return start + " - " + utils.DateLabel(t.EndDate)
}

func PriceLabel(t models.UpcomingTrip) string {
	return utils.FormatRupees(t.PricePerPerson) + " per person"
}

func Views(trips []models.UpcomingTrip) []UpcomingView {
	out := make([]UpcomingView, len(trips))
	for i, t := range trips {
		out[i] = UpcomingView{
			UpcomingTrip: t,
			DateLabel:    DateRangeLabel(t),
			PriceLabel:   PriceLabel(t),
			FewSeatsLeft: FewSeatsLeft(t),
		}
	}
	return out
}

// Upcoming runs the page pipeline: filter, then sort.
func Upcoming(trips []models.UpcomingTrip, query string, key SortKey) []models.UpcomingTrip {
	return SortTrips(FilterTrips(trips, query), key)
}
