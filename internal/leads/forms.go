package leads

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"travelbuddies/internal/domain"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/utils"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indian mobile numbers: ten digits, leading 6-9.
	phoneRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
)

const (
	msgRequired     = "Please fill in all required fields"
	msgInvalidEmail = "Please enter a valid email address"
	msgInvalidPhone = "Please enter a valid 10-digit Indian phone number"
	msgTravelers    = "Number of travelers must be between 1 and 20"
	msgTooLong      = "%s must be at most %d characters"

	maxTravelers = 20
)

// Upper bounds on stored text, in characters. They fit the leads table columns.
const (
	maxTripIDLen    = 128
	maxTripNameLen  = 255
	maxNameLen      = 100
	maxEmailLen     = 254
	maxPhoneLen     = 32
	maxTravelersLen = 8
	maxDateLen      = 32
	maxSubjectLen   = 200
	maxMessageLen   = 5000
)

// BookingForm is the booking modal for one upcoming trip.
type BookingForm struct {
	TripID        string
	TripName      string
	FullName      string
	Email         string
	Phone         string
	Travelers     string
	PreferredDate string
	Message       string
}

// NewBookingForm opens an empty form for a trip with one traveler preselected.
func NewBookingForm(tripID, tripName string) BookingForm {
	return BookingForm{TripID: tripID, TripName: tripName, Travelers: "1"}
}

func BookingFormFromPayload(p models.BookingPayload) BookingForm {
	return BookingForm{
		TripID:        strings.TrimSpace(p.TripID),
		TripName:      strings.TrimSpace(p.TripName),
		FullName:      p.FullName,
		Email:         p.Email,
		Phone:         p.Phone,
		Travelers:     p.Travelers,
		PreferredDate: p.PreferredDate,
		Message:       p.Message,
	}
}

// Validate reports the first unmet rule: required fields, length caps, then email shape,
// then the mobile number, then the traveler count.
func (f BookingForm) Validate() error {
	if err := requireFields(
		field{"fullName", f.FullName},
		field{"email", f.Email},
		field{"phone", f.Phone},
	); err != nil {
		return err
	}
	if err := checkLengths(
		limit{"tripId", "Trip ID", f.TripID, maxTripIDLen},
		limit{"tripName", "Trip name", f.TripName, maxTripNameLen},
		limit{"fullName", "Full name", f.FullName, maxNameLen},
		limit{"email", "Email", f.Email, maxEmailLen},
		limit{"phone", "Phone", f.Phone, maxPhoneLen},
		limit{"travelers", "Number of travelers", f.Travelers, maxTravelersLen},
		limit{"preferredDate", "Preferred date", f.PreferredDate, maxDateLen},
		limit{"message", "Message", f.Message, maxMessageLen},
	); err != nil {
		return err
	}
	if err := ValidateEmail(f.Email); err != nil {
		return err
	}
	if err := ValidateIndianMobile(f.Phone); err != nil {
		return err
	}
	if t := strings.TrimSpace(f.Travelers); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n < 1 || n > maxTravelers {
			return domain.ValidationError{Field: "travelers", Msg: msgTravelers, Err: err}
		}
	}
	return nil
}

// Payload is the body posted to /api/send-booking.
func (f BookingForm) Payload() models.BookingPayload {
	return models.BookingPayload{
		TripID:        f.TripID,
		TripName:      f.TripName,
		FullName:      utils.NormalizeSpace(f.FullName),
		Email:         strings.TrimSpace(f.Email),
		Phone:         strings.TrimSpace(f.Phone),
		Travelers:     utils.Fallback(f.Travelers, "1"),
		PreferredDate: strings.TrimSpace(f.PreferredDate),
		Message:       strings.TrimSpace(f.Message),
	}
}

// EnquiryForm is the general contact modal; it is not tied to a trip.
type EnquiryForm struct {
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

func EnquiryFormFromPayload(p models.EnquiryPayload) EnquiryForm {
	return EnquiryForm(p)
}

// Validate requires name, email and message. Phone and subject are free text
// within the column caps.
func (f EnquiryForm) Validate() error {
	if err := requireFields(
		field{"fullName", f.FullName},
		field{"email", f.Email},
		field{"message", f.Message},
	); err != nil {
		return err
	}
	if err := checkLengths(
		limit{"fullName", "Full name", f.FullName, maxNameLen},
		limit{"email", "Email", f.Email, maxEmailLen},
		limit{"phone", "Phone", f.Phone, maxPhoneLen},
		limit{"subject", "Subject", f.Subject, maxSubjectLen},
		limit{"message", "Message", f.Message, maxMessageLen},
	); err != nil {
		return err
	}
	return ValidateEmail(f.Email)
}

func (f EnquiryForm) Payload() models.EnquiryPayload {
	return models.EnquiryPayload{
		FullName: utils.NormalizeSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Subject:  strings.TrimSpace(f.Subject),
		Message:  strings.TrimSpace(f.Message),
	}
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return domain.ValidationError{Field: "email", Msg: msgInvalidEmail}
	}
	return nil
}

// ValidateIndianMobile checks the number after removing any whitespace.
func ValidateIndianMobile(phone string) error {
	if !phoneRegex.MatchString(utils.StripSpace(phone)) {
		return domain.ValidationError{Field: "phone", Msg: msgInvalidPhone}
	}
	return nil
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.ValidationError{Field: f.name, Msg: msgRequired}
		}
	}
	return nil
}

type limit struct {
	name  string
	label string
	value string
	max   int
}

func checkLengths(limits ...limit) error {
	for _, l := range limits {
		if utf8.RuneCountInString(strings.TrimSpace(l.value)) > l.max {
			return domain.ValidationError{Field: l.name, Msg: fmt.Sprintf(msgTooLong, l.label, l.max)}
		}
	}
	return nil
}
