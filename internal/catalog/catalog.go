// Package catalog holds the read-only trip dataset the site is rendered from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"travelbuddies/internal/domain"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/utils"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Data mirrors the catalog file layout.
type Data struct {
	Agency      models.Agency          `yaml:"agency"`
	Completed   []models.CompletedTrip `yaml:"completedTrips"`
	Upcoming    []models.UpcomingTrip  `yaml:"upcomingTrips"`
	Itineraries []models.Itinerary     `yaml:"itineraries"`
}

// Catalog is immutable once built. Accessors return copies.
type Catalog struct {
	data Data
}

// Load reads the catalog from path, or the embedded dataset when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Parse(defaultYAML)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Default returns the embedded dataset. It panics if the embedded file is broken.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func Parse(raw []byte) (*Catalog, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(d)
}

// New validates d and wraps it.
func New(d Data) (*Catalog, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Catalog{data: cloneData(d)}, nil
}

// WithAgencyEmail returns a copy of c that sends leads to email instead.
func (c *Catalog) WithAgencyEmail(email string) *Catalog {
	email = strings.TrimSpace(email)
	if email == "" {
		return c
	}
	d := cloneData(c.data)
	d.Agency.Email = email
	return &Catalog{data: d}
}

func (c *Catalog) Agency() models.Agency { return c.data.Agency }

func (c *Catalog) Completed() []models.CompletedTrip {
	return cloneData(Data{Completed: c.data.Completed}).Completed
}

func (c *Catalog) Upcoming() []models.UpcomingTrip {
	return append([]models.UpcomingTrip(nil), c.data.Upcoming...)
}

func (c *Catalog) Itineraries() []models.Itinerary {
	return cloneData(Data{Itineraries: c.data.Itineraries}).Itineraries
}

func (c *Catalog) UpcomingByID(id string) (models.UpcomingTrip, error) {
	for _, t := range c.data.Upcoming {
		if t.ID == id {
			return t, nil
		}
	}
	return models.UpcomingTrip{}, domain.NotFoundError{Resource: "trip", ID: id}
}

func (c *Catalog) ItineraryByID(id string) (models.Itinerary, error) {
	for _, it := range c.data.Itineraries {
		if it.ID == id {
			return cloneItinerary(it), nil
		}
	}
	return models.Itinerary{}, domain.NotFoundError{Resource: "itinerary", ID: id}
}

// Validate checks the structural rules of the dataset. Empty lists inside an
// itinerary are allowed; they simply render nothing.
func (d Data) Validate() error {
	seen := map[string]bool{}
	for i, t := range d.Completed {
		if strings.TrimSpace(t.ID) == "" {
			return domain.ValidationError{Field: "completedTrips", Msg: fmt.Sprintf("completed trip #%d has no id", i)}
		}
		if seen[t.ID] {
			return domain.ValidationError{Field: "completedTrips", Msg: fmt.Sprintf("duplicate completed trip id %q", t.ID)}
		}
		seen[t.ID] = true
		if len(t.Gallery) == 0 {
			return domain.ValidationError{Field: "completedTrips", Msg: fmt.Sprintf("completed trip %q has an empty gallery", t.ID)}
		}
	}

	seen = map[string]bool{}
	for i, t := range d.Upcoming {
		if strings.TrimSpace(t.ID) == "" {
			return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("upcoming trip #%d has no id", i)}
		}
		if seen[t.ID] {
			return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("duplicate upcoming trip id %q", t.ID)}
		}
		seen[t.ID] = true
		if t.PricePerPerson <= 0 {
			return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("trip %q must have a positive price", t.ID)}
		}
		if t.SeatsLeft < 0 {
			return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("trip %q has negative seats", t.ID)}
		}
		start, err := utils.ParseDate(t.StartDate)
		if err != nil {
			return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("trip %q has invalid startDate %q", t.ID, t.StartDate), Err: err}
		}
		if t.EndDate != "" {
			end, err := utils.ParseDate(t.EndDate)
			if err != nil {
				return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("trip %q has invalid endDate %q", t.ID, t.EndDate), Err: err}
			}
			if end.Before(start) {
				return domain.ValidationError{Field: "upcomingTrips", Msg: fmt.Sprintf("trip %q ends before it starts", t.ID)}
			}
		}
	}

	seen = map[string]bool{}
	for i, it := range d.Itineraries {
		if strings.TrimSpace(it.ID) == "" {
			return domain.ValidationError{Field: "itineraries", Msg: fmt.Sprintf("itinerary #%d has no id", i)}
		}
		if seen[it.ID] {
			return domain.ValidationError{Field: "itineraries", Msg: fmt.Sprintf("duplicate itinerary id %q", it.ID)}
		}
		seen[it.ID] = true
		prev := 0
		for _, day := range it.Schedule {
			if day.Day < 1 || day.Day <= prev {
				return domain.ValidationError{Field: "itineraries", Msg: fmt.Sprintf("itinerary %q: day numbers must start at 1 and increase (got %d after %d)", it.ID, day.Day, prev)}
			}
			prev = day.Day
		}
	}
	return nil
}

func cloneData(d Data) Data {
	out := Data{Agency: d.Agency}
	if d.Completed != nil {
		out.Completed = make([]models.CompletedTrip, len(d.Completed))
		for i, t := range d.Completed {
			t.Gallery = append([]string(nil), t.Gallery...)
			out.Completed[i] = t
		}
	}
	if d.Upcoming != nil {
		out.Upcoming = append([]models.UpcomingTrip(nil), d.Upcoming...)
	}
	if d.Itineraries != nil {
		out.Itineraries = make([]models.Itinerary, len(d.Itineraries))
		for i, it := range d.Itineraries {
			out.Itineraries[i] = cloneItinerary(it)
		}
	}
	return out
}

func cloneItinerary(it models.Itinerary) models.Itinerary {
	schedule := make([]models.DayPlan, len(it.Schedule))
	for i, day := range it.Schedule {
		day.Activities = append([]string(nil), day.Activities...)
		schedule[i] = day
	}
	it.Schedule = schedule
	it.Inclusions = append([]string(nil), it.Inclusions...)
	it.Exclusions = append([]string(nil), it.Exclusions...)
	it.PackingList = append([]string(nil), it.PackingList...)
	return it
}
