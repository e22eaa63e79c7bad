package models

// Agency is the public profile shown in the header, footer and mail templates.
type Agency struct {
	Name    string      `json:"name" yaml:"name"`
	Tagline string      `json:"tagline" yaml:"tagline"`
	Email   string      `json:"email" yaml:"email"`
	Phone   string      `json:"phone" yaml:"phone"`
	Social  SocialLinks `json:"social" yaml:"social"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter"`
	YouTube   string `json:"youtube,omitempty" yaml:"youtube"`
}

// CompletedTrip is a past tour shown in the gallery section.
type CompletedTrip struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	ShortDesc     string   `json:"shortDesc" yaml:"shortDesc"`
	DateCompleted string   `json:"dateCompleted" yaml:"dateCompleted"`
	CoverImage    string   `json:"coverImage" yaml:"coverImage"`
	Gallery       []string `json:"gallery" yaml:"gallery"`
	Testimonial   string   `json:"testimonial" yaml:"testimonial"`
}

// UpcomingTrip is a bookable package. Dates are YYYY-MM-DD.
type UpcomingTrip struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	ShortDesc      string `json:"shortDesc" yaml:"shortDesc"`
	StartDate      string `json:"startDate" yaml:"startDate"`
	EndDate        string `json:"endDate" yaml:"endDate"`
	PricePerPerson int    `json:"pricePerPerson" yaml:"pricePerPerson"`
	SeatsLeft      int    `json:"seatsLeft" yaml:"seatsLeft"`
	CoverImage     string `json:"coverImage" yaml:"coverImage"`
	ItineraryID    string `json:"itineraryId,omitempty" yaml:"itineraryId"`
}

type DayPlan struct {
	Day           int      `json:"day" yaml:"day"`
	Title         string   `json:"title" yaml:"title"`
	Activities    []string `json:"activities" yaml:"activities"`
	Meals         string   `json:"meals" yaml:"meals"`
	Accommodation string   `json:"accommodation" yaml:"accommodation"`
}

type Itinerary struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Duration    string    `json:"duration" yaml:"duration"`
	GroupSize   string    `json:"groupSize" yaml:"groupSize"`
	Difficulty  string    `json:"difficulty" yaml:"difficulty"`
	Schedule    []DayPlan `json:"schedule" yaml:"schedule"`
	Inclusions  []string  `json:"inclusions" yaml:"inclusions"`
	Exclusions  []string  `json:"exclusions" yaml:"exclusions"`
	PackingList []string  `json:"packingList" yaml:"packingList"`
}
