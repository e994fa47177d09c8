package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/topshelfent/booking-api/controllers"
	"github.com/topshelfent/booking-api/models"
	"github.com/topshelfent/booking-api/redis"
	"github.com/topshelfent/booking-api/routes"
	"github.com/topshelfent/booking-api/store"
)

// fakeStore substitutes the database behind the booking flow. Unused
// interface methods come from the embedded nil and panic if reached.
type fakeStore struct {
	store.SlotStore
	dates     []time.Time
	slots     map[uint]*models.Slot
	bookErr   error
	bookCalls int
}

func (f *fakeStore) ListAvailableDates(ctx context.Context, from time.Time) ([]time.Time, error) {
	return f.dates, nil
}

func (f *fakeStore) ListSlotsForDate(ctx context.Context, date time.Time) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range f.slots {
		if s.Date.Equal(date) && s.Open() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) BookSlot(ctx context.Context, id uint, details store.BookingDetails) (*models.Slot, error) {
	f.bookCalls++
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	slot, ok := f.slots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	booked := *slot
	booked.IsBooked = true
	booked.ClientName = details.ClientName
	booked.ClientEmail = details.ClientEmail
	booked.BookingRef = "ref-123"
	return &booked, nil
}

func newBookingApp(f *fakeStore) *fiber.App {
	app := fiber.New()
	routes.SetupBookingRoutes(app, controllers.NewBookingController(f, &redis.Cache{}))
	return app
}

func claimRequest(id uint, body map[string]string) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/booking/slots/%d/claim", id), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func futureDate(days int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestClaimSlot_MissingNameRejectedBeforeStore(t *testing.T) {
	f := &fakeStore{slots: map[uint]*models.Slot{}}
	app := newBookingApp(f)

	resp, err := app.Test(claimRequest(1, map[string]string{
		"client_name":  "",
		"client_email": "dana@example.com",
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if f.bookCalls != 0 {
		t.Fatalf("validation must run before any store access, got %d calls", f.bookCalls)
	}
}

func TestClaimSlot_MalformedEmailRejected(t *testing.T) {
	f := &fakeStore{slots: map[uint]*models.Slot{}}
	app := newBookingApp(f)

	resp, err := app.Test(claimRequest(1, map[string]string{
		"client_name":  "Dana",
		"client_email": "not-an-email",
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if f.bookCalls != 0 {
		t.Fatalf("validation must run before any store access, got %d calls", f.bookCalls)
	}
}

func TestClaimSlot_Success(t *testing.T) {
	f := &fakeStore{slots: map[uint]*models.Slot{
		5: {Model: gorm.Model{ID: 5}, Date: futureDate(3), StartTime: "14:00", EndTime: "15:00", IsAvailable: true},
	}}
	app := newBookingApp(f)

	resp, err := app.Test(claimRequest(5, map[string]string{
		"client_name":  "Dana",
		"client_email": "dana@example.com",
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["booking_ref"] != "ref-123" {
		t.Fatalf("expected booking reference in response, got %v", body)
	}
}

func TestClaimSlot_LostRace(t *testing.T) {
	f := &fakeStore{bookErr: store.ErrSlotAlreadyBooked}
	app := newBookingApp(f)

	resp, err := app.Test(claimRequest(5, map[string]string{
		"client_name":  "Riley",
		"client_email": "riley@example.com",
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for lost race, got %d", resp.StatusCode)
	}
}

func TestGetSlotsForDate_PastDateNotSelectable(t *testing.T) {
	past := futureDate(-2)
	f := &fakeStore{
		dates: []time.Time{past},
		slots: map[uint]*models.Slot{
			1: {Model: gorm.Model{ID: 1}, Date: past, StartTime: "10:00", EndTime: "11:00", IsAvailable: true},
		},
	}
	app := newBookingApp(f)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/booking/slots?date="+past.Format("2006-01-02"), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Selectable bool                     `json:"selectable"`
		Slots      []map[string]interface{} `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Selectable {
		t.Fatal("past dates must not be selectable")
	}
	if len(body.Slots) != 0 {
		t.Fatalf("past dates must offer no slots, got %d", len(body.Slots))
	}
}

func TestGetSlotsForDate_OpenDate(t *testing.T) {
	date := futureDate(3)
	f := &fakeStore{
		dates: []time.Time{date},
		slots: map[uint]*models.Slot{
			1: {Model: gorm.Model{ID: 1}, Date: date, StartTime: "10:00", EndTime: "11:00", IsAvailable: true},
			2: {Model: gorm.Model{ID: 2}, Date: date, StartTime: "14:00", EndTime: "15:00", IsAvailable: true, IsBooked: true},
		},
	}
	app := newBookingApp(f)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/booking/slots?date="+date.Format("2006-01-02"), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body struct {
		Selectable bool                     `json:"selectable"`
		Slots      []map[string]interface{} `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Selectable {
		t.Fatal("date with an open slot must be selectable")
	}
	if len(body.Slots) != 1 {
		t.Fatalf("booked slots must not be offered, got %d slots", len(body.Slots))
	}
	if body.Slots[0]["start_time"] != "10:00" {
		t.Fatalf("expected the open 10:00 slot, got %v", body.Slots[0])
	}
}
