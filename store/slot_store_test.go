package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/topshelfent/booking-api/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = database.AutoMigrate(&models.User{}, &models.RecurringSlot{}, &models.Slot{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewGormStore(database)
}

func futureDate(days int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func mustCreateSlot(t *testing.T, s *GormStore, slot *models.Slot) *models.Slot {
	t.Helper()
	if err := s.CreateSlot(context.Background(), slot); err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}
	return slot
}

func TestBookSlot_SecondClaimLoses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	slot := mustCreateSlot(t, s, &models.Slot{
		UserID: 1, Date: futureDate(3), StartTime: "14:00", EndTime: "15:00", IsAvailable: true,
	})

	winner := BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com", ClientPhone: "555-0100", Notes: "wedding"}
	booked, err := s.BookSlot(ctx, slot.ID, winner)
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if !booked.IsBooked || booked.BookingRef == "" {
		t.Fatalf("expected booked slot with reference, got %+v", booked)
	}

	loser := BookingDetails{ClientName: "Riley", ClientEmail: "riley@example.com"}
	if _, err := s.BookSlot(ctx, slot.ID, loser); !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("expected ErrSlotAlreadyBooked, got %v", err)
	}

	// The stored contact details belong to the winner.
	stored, err := s.GetSlot(ctx, slot.ID)
	if err != nil {
		t.Fatalf("failed to reload slot: %v", err)
	}
	if stored.ClientName != "Dana" || stored.ClientEmail != "dana@example.com" {
		t.Fatalf("winner's details were overwritten: %+v", stored)
	}
}

func TestBookSlot_MissingSlot(t *testing.T) {
	s := newTestStore(t)
	_, err := s.BookSlot(context.Background(), 999, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookSlot_UnavailableSlot(t *testing.T) {
	s := newTestStore(t)
	slot := mustCreateSlot(t, s, &models.Slot{
		UserID: 1, Date: futureDate(3), StartTime: "14:00", EndTime: "15:00", IsAvailable: false,
	})
	_, err := s.BookSlot(context.Background(), slot.ID, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"})
	if !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("expected ErrSlotAlreadyBooked for unavailable slot, got %v", err)
	}
}

func TestListSlotsForDate_OnlyOpenSlots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := futureDate(5)

	mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: date, StartTime: "16:00", EndTime: "17:00", IsAvailable: true})
	mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: date, StartTime: "10:00", EndTime: "11:00", IsAvailable: true})
	mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: date, StartTime: "12:00", EndTime: "13:00", IsAvailable: false})
	booked := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: date, StartTime: "14:00", EndTime: "15:00", IsAvailable: true})
	if _, err := s.BookSlot(ctx, booked.ID, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"}); err != nil {
		t.Fatalf("failed to book slot: %v", err)
	}

	slots, err := s.ListSlotsForDate(ctx, date)
	if err != nil {
		t.Fatalf("failed to list slots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 open slots, got %d", len(slots))
	}
	if slots[0].StartTime != "10:00" || slots[1].StartTime != "16:00" {
		t.Fatalf("expected slots ordered by start time, got %s then %s", slots[0].StartTime, slots[1].StartTime)
	}
}

func TestListAvailableDates_DropsFullyBookedDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dateA := futureDate(2)
	dateB := futureDate(4)

	only := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: dateA, StartTime: "10:00", EndTime: "11:00", IsAvailable: true})
	mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: dateB, StartTime: "10:00", EndTime: "11:00", IsAvailable: true})

	dates, err := s.ListAvailableDates(ctx, time.Now())
	if err != nil {
		t.Fatalf("failed to list dates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 available dates, got %d", len(dates))
	}

	if _, err := s.BookSlot(ctx, only.ID, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"}); err != nil {
		t.Fatalf("failed to book slot: %v", err)
	}

	dates, err = s.ListAvailableDates(ctx, time.Now())
	if err != nil {
		t.Fatalf("failed to list dates: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("expected 1 available date after booking, got %d", len(dates))
	}
	if !dates[0].Equal(dateB) {
		t.Fatalf("expected %s to remain, got %s", dateB, dates[0])
	}
}

func TestUpdateSlotTimes_Guards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	slot := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: futureDate(3), StartTime: "10:00", EndTime: "11:00", IsAvailable: true})

	if _, err := s.UpdateSlotTimes(ctx, slot.ID, 2, "11:00", "12:00"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for wrong owner, got %v", err)
	}

	updated, err := s.UpdateSlotTimes(ctx, slot.ID, 1, "11:00", "12:30")
	if err != nil {
		t.Fatalf("failed to update slot: %v", err)
	}
	if updated.StartTime != "11:00" || updated.EndTime != "12:30" {
		t.Fatalf("window not updated: %+v", updated)
	}

	if _, err := s.BookSlot(ctx, slot.ID, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"}); err != nil {
		t.Fatalf("failed to book slot: %v", err)
	}
	if _, err := s.UpdateSlotTimes(ctx, slot.ID, 1, "12:00", "13:00"); !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("expected ErrSlotAlreadyBooked for booked slot, got %v", err)
	}
}

func TestDeleteSlot_RefusedWhenBooked(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	slot := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: futureDate(3), StartTime: "10:00", EndTime: "11:00", IsAvailable: true})
	if _, err := s.BookSlot(ctx, slot.ID, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"}); err != nil {
		t.Fatalf("failed to book slot: %v", err)
	}
	if err := s.DeleteSlot(ctx, slot.ID, 1); !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("expected ErrSlotAlreadyBooked, got %v", err)
	}
}

func TestFindOverlappingSlots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := futureDate(3)
	existing := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: date, StartTime: "10:00", EndTime: "12:00", IsAvailable: true})

	overlapping, err := s.FindOverlappingSlots(ctx, 1, date, "11:00", "13:00", 0)
	if err != nil {
		t.Fatalf("overlap query failed: %v", err)
	}
	if len(overlapping) != 1 {
		t.Fatalf("expected 1 overlapping slot, got %d", len(overlapping))
	}

	// Touching windows do not conflict.
	touching, err := s.FindOverlappingSlots(ctx, 1, date, "12:00", "13:00", 0)
	if err != nil {
		t.Fatalf("overlap query failed: %v", err)
	}
	if len(touching) != 0 {
		t.Fatalf("expected no conflict for touching window, got %d", len(touching))
	}

	// The slot being edited is not its own conflict.
	self, err := s.FindOverlappingSlots(ctx, 1, date, "10:30", "11:30", existing.ID)
	if err != nil {
		t.Fatalf("overlap query failed: %v", err)
	}
	if len(self) != 0 {
		t.Fatalf("expected excluded slot to be skipped, got %d", len(self))
	}
}

func TestDeleteRecurringSlot_KeepsBookedMaterializedSlots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &models.RecurringSlot{UserID: 1, Weekday: models.Friday, StartTime: "18:00", EndTime: "20:00", IsActive: true}
	if err := s.CreateRecurringSlot(ctx, rec); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	open := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: futureDate(7), StartTime: "18:00", EndTime: "20:00", IsAvailable: true, RecurringID: &rec.ID})
	bookedSlot := mustCreateSlot(t, s, &models.Slot{UserID: 1, Date: futureDate(14), StartTime: "18:00", EndTime: "20:00", IsAvailable: true, RecurringID: &rec.ID})
	if _, err := s.BookSlot(ctx, bookedSlot.ID, BookingDetails{ClientName: "Dana", ClientEmail: "dana@example.com"}); err != nil {
		t.Fatalf("failed to book slot: %v", err)
	}

	if err := s.DeleteRecurringSlot(ctx, rec.ID, 1); err != nil {
		t.Fatalf("failed to delete template: %v", err)
	}

	if _, err := s.GetSlot(ctx, open.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected open materialized slot to be deleted, got %v", err)
	}
	kept, err := s.GetSlot(ctx, bookedSlot.ID)
	if err != nil {
		t.Fatalf("booked slot must survive template deletion: %v", err)
	}
	if kept.ClientName != "Dana" {
		t.Fatalf("booked slot lost its claim: %+v", kept)
	}

	if _, err := s.UpdateRecurringSlot(ctx, rec.ID, 1, models.Friday, "19:00", "21:00", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected template to be gone, got %v", err)
	}
}
