package models

import "time"

type LeadKind string

const (
	LeadBooking LeadKind = "booking"
	LeadEnquiry LeadKind = "enquiry"
)

// BookingPayload is the JSON body of POST /api/send-booking.
type BookingPayload struct {
	TripID        string `json:"tripId" form:"tripId"`
	TripName      string `json:"tripName" form:"tripName"`
	FullName      string `json:"fullName" form:"fullName"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
	Travelers     string `json:"travelers" form:"travelers"`
	PreferredDate string `json:"preferredDate" form:"preferredDate"`
	Message       string `json:"message" form:"message"`
}

// EnquiryPayload is the JSON body of POST /api/send-enquiry.
type EnquiryPayload struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Subject  string `json:"subject" form:"subject"`
	Message  string `json:"message" form:"message"`
}

// Lead is a received submission as stored in the inbox.
type Lead struct {
	ID            string    `json:"id"`
	Kind          LeadKind  `json:"kind"`
	TripID        string    `json:"tripId,omitempty"`
	TripName      string    `json:"tripName,omitempty"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Travelers     string    `json:"travelers,omitempty"`
	PreferredDate string    `json:"preferredDate,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FallbackEvent records a submission that was handed off to the mail client
// because the remote endpoint could not be reached.
type FallbackEvent struct {
	Kind       LeadKind  `json:"kind"`
	TripID     string    `json:"tripId,omitempty"`
	Reason     string    `json:"reason"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
