package utils

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildMailto(t *testing.T) {
	link := BuildMailto("info@topshelfentertainment.com", ContactInquiry{
		Name:      "Dana Smith",
		Email:     "dana@example.com",
		Phone:     "555-0100",
		EventType: "Wedding",
		EventDate: "2025-09-20",
		Message:   "Looking for a DJ & two motivators",
	})

	if !strings.HasPrefix(link, "mailto:info@topshelfentertainment.com?") {
		t.Fatalf("unexpected recipient: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("mailto links must encode spaces as %%20, got %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	q := parsed.Query()
	if q.Get("subject") != "Top Shelf Entertainment - Wedding Booking Inquiry" {
		t.Fatalf("unexpected subject: %q", q.Get("subject"))
	}
	body := q.Get("body")
	if !strings.Contains(body, "Name: Dana Smith") || !strings.Contains(body, "Looking for a DJ & two motivators") {
		t.Fatalf("body is missing inquiry fields: %q", body)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"dana@example.com", "a.b+c@sub.domain.org"}
	for _, s := range valid {
		if !IsValidEmail(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "dana", "dana@", "@example.com", "dana @example.com"}
	for _, s := range invalid {
		if IsValidEmail(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
