package leads

import (
	"fmt"
	"strings"

	"travelbuddies/internal/utils"
)

// MailtoMessage is what the local fallback hands to the visitor's mail client.
type MailtoMessage struct {
	To      string
	Subject string
	Body    string
}

// URI renders a mailto: link with the subject and body percent-encoded.
func (m MailtoMessage) URI() string {
	return "mailto:" + m.To + "?subject=" + EncodeURIComponent(m.Subject) + "&body=" + EncodeURIComponent(m.Body)
}

func BookingSubject(tripName string) string {
	return "Booking Request: " + tripName
}

// BookingBody is the plain-text booking request. The layout is fixed so agents
// can scan it the same way whether it arrives by SMTP or from a mail client.
func BookingBody(agencyName string, f BookingForm) string {
	var b strings.Builder
	b.WriteString("Booking Request Details\n")
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "Trip: %s\n", f.TripName)
	fmt.Fprintf(&b, "Trip ID: %s\n", f.TripID)
	b.WriteString("\nCustomer Information:\n")
	fmt.Fprintf(&b, "Name: %s\n", utils.NormalizeSpace(f.FullName))
	fmt.Fprintf(&b, "Email: %s\n", strings.TrimSpace(f.Email))
	fmt.Fprintf(&b, "Phone: %s\n", strings.TrimSpace(f.Phone))
	fmt.Fprintf(&b, "Number of Travelers: %s\n", utils.Fallback(f.Travelers, "1"))
	fmt.Fprintf(&b, "Preferred Start Date: %s\n", utils.Fallback(f.PreferredDate, "Flexible"))
	b.WriteString("\nMessage:\n")
	b.WriteString(utils.Fallback(f.Message, "No additional message"))
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "This booking request was submitted via %s website.", agencyName)
	return b.String()
}

func EnquirySubject(f EnquiryForm) string {
	return utils.Fallback(f.Subject, "General Enquiry")
}

func EnquiryBody(agencyName string, f EnquiryForm) string {
	var b strings.Builder
	b.WriteString("General Enquiry\n")
	b.WriteString("---------------\n")
	b.WriteString("\nCustomer Information:\n")
	fmt.Fprintf(&b, "Name: %s\n", utils.NormalizeSpace(f.FullName))
	fmt.Fprintf(&b, "Email: %s\n", strings.TrimSpace(f.Email))
	fmt.Fprintf(&b, "Phone: %s\n", utils.Fallback(f.Phone, "Not provided"))
	fmt.Fprintf(&b, "\nSubject: %s\n", utils.Fallback(f.Subject, "General enquiry"))
	b.WriteString("\nMessage:\n")
	b.WriteString(strings.TrimSpace(f.Message))
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "This enquiry was submitted via %s website.", agencyName)
	return b.String()
}

func BookingMailto(to, agencyName string, f BookingForm) MailtoMessage {
	return MailtoMessage{To: to, Subject: BookingSubject(f.TripName), Body: BookingBody(agencyName, f)}
}

func EnquiryMailto(to, agencyName string, f EnquiryForm) MailtoMessage {
	return MailtoMessage{To: to, Subject: EnquirySubject(f), Body: EnquiryBody(agencyName, f)}
}

// EncodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ),
// which is what browsers expect inside mailto: query values. Spaces become %20.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
