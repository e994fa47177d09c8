package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ContactInquiry is the contact form payload from the marketing site.
type ContactInquiry struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Message   string `json:"message"`
}

// BuildMailto composes the mailto link the contact form opens. The body
// mirrors the site's inquiry layout: contact fields line by line, then
// the free-form message.
func BuildMailto(to string, inquiry ContactInquiry) string {
	subject := fmt.Sprintf("Top Shelf Entertainment - %s Booking Inquiry", inquiry.EventType)
	body := strings.Join([]string{
		"Name: " + inquiry.Name,
		"Email: " + inquiry.Email,
		"Phone: " + inquiry.Phone,
		"Event Type: " + inquiry.EventType,
		"Event Date: " + inquiry.EventDate,
		"",
		"Message:",
		inquiry.Message,
	}, "\r\n")

	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)
	// mailto expects %20 for spaces, not '+'.
	query := strings.ReplaceAll(params.Encode(), "+", "%20")
	return "mailto:" + to + "?" + query
}
