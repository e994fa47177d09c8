// Package store is the persistence layer for slots and recurring
// templates. Handlers depend on the SlotStore interface so tests can
// substitute a fake; the GORM implementation lives in slot_store.go.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/topshelfent/booking-api/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSlotAlreadyBooked is returned when a claim or edit hits a slot
	// that is no longer open.
	ErrSlotAlreadyBooked = errors.New("slot already booked")
	// ErrNotOwner is returned when a mutation targets a record owned by
	// another user.
	ErrNotOwner = errors.New("record belongs to another user")
	// ErrOverlap is returned when a new or edited window intersects an
	// existing open window on the same date.
	ErrOverlap = errors.New("time window overlaps an existing slot")
	// ErrStoreUnavailable wraps read failures against the backing
	// database.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrBookingFailed wraps write failures while claiming a slot.
	ErrBookingFailed = errors.New("booking failed")
)

// BookingDetails carries the visitor's contact information attached to a
// slot when it is claimed.
type BookingDetails struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	Notes       string `json:"notes"`
}

// SlotStore is the query and mutation surface shared by the public
// booking flow, the owner calendar and the materialization job.
type SlotStore interface {
	// Public booking flow.
	ListAvailableDates(ctx context.Context, from time.Time) ([]time.Time, error)
	ListSlotsForDate(ctx context.Context, date time.Time) ([]models.Slot, error)
	BookSlot(ctx context.Context, id uint, details BookingDetails) (*models.Slot, error)

	// Owner calendar.
	GetSlot(ctx context.Context, id uint) (*models.Slot, error)
	ListOneOffSlots(ctx context.Context, ownerID uint, from, to time.Time) ([]models.Slot, error)
	ListRecurringSlots(ctx context.Context, ownerID uint) ([]models.RecurringSlot, error)
	CreateSlot(ctx context.Context, slot *models.Slot) error
	UpdateSlotTimes(ctx context.Context, id, ownerID uint, start, end string) (*models.Slot, error)
	SetSlotAvailability(ctx context.Context, id, ownerID uint, available bool) (*models.Slot, error)
	DeleteSlot(ctx context.Context, id, ownerID uint) error
	FindOverlappingSlots(ctx context.Context, ownerID uint, date time.Time, start, end string, excludeID uint) ([]models.Slot, error)

	// Recurring templates.
	CreateRecurringSlot(ctx context.Context, rec *models.RecurringSlot) error
	UpdateRecurringSlot(ctx context.Context, id, ownerID uint, weekday models.Weekday, start, end string, active bool) (*models.RecurringSlot, error)
	DeleteRecurringSlot(ctx context.Context, id, ownerID uint) error

	// Materialization job.
	ListActiveRecurringSlots(ctx context.Context) ([]models.RecurringSlot, error)
	SlotExistsForTemplate(ctx context.Context, templateID uint, date time.Time) (bool, error)
}
