package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/availability"
	"github.com/topshelfent/booking-api/redis"
	"github.com/topshelfent/booking-api/store"
	"github.com/topshelfent/booking-api/utils"
)

const dateLayout = "2006-01-02"

// BookingController serves the public "book a call" flow: which dates
// have openings, which slots a date offers, and the claim itself.
type BookingController struct {
	store store.SlotStore
	cache *redis.Cache
}

func NewBookingController(s store.SlotStore, cache *redis.Cache) *BookingController {
	return &BookingController{store: s, cache: cache}
}

// GetAvailableDates returns every upcoming date with at least one open
// slot, for the date picker's enabled/disabled state.
func (bc *BookingController) GetAvailableDates(c *fiber.Ctx) error {
	ctx := c.UserContext()

	dates, ok := bc.cache.GetAvailableDates(ctx)
	if !ok {
		var err error
		dates, err = bc.store.ListAvailableDates(ctx, time.Now())
		if err != nil {
			return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to fetch available dates", err))
		}
		bc.cache.SetAvailableDates(ctx, dates)
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(dateLayout))
	}
	return c.JSON(fiber.Map{"dates": formatted})
}

// GetSlotsForDate returns the open slots for one date. Past dates and
// dates without openings yield an empty list rather than an error.
func (bc *BookingController) GetSlotsForDate(c *fiber.Ctx) error {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid or missing date, want YYYY-MM-DD", err))
	}

	ctx := c.UserContext()
	dates, ok := bc.cache.GetAvailableDates(ctx)
	if !ok {
		dates, err = bc.store.ListAvailableDates(ctx, time.Now())
		if err != nil {
			return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to fetch available slots", err))
		}
		bc.cache.SetAvailableDates(ctx, dates)
	}

	if !availability.IsDateSelectable(date, time.Now(), dates) {
		return c.JSON(fiber.Map{"date": date.Format(dateLayout), "selectable": false, "slots": []fiber.Map{}})
	}

	slots, err := bc.store.ListSlotsForDate(ctx, date)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to fetch available slots", err))
	}

	out := make([]fiber.Map, 0, len(slots))
	for _, s := range slots {
		out = append(out, fiber.Map{
			"id":         s.ID,
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
		})
	}
	return c.JSON(fiber.Map{"date": date.Format(dateLayout), "selectable": true, "slots": out})
}

// ClaimSlot books an open slot for a visitor. Required fields are checked
// before any store access; the conditional update in the store decides
// races, so of two simultaneous claims exactly one gets the slot.
func (bc *BookingController) ClaimSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid slot id", err))
	}

	details := new(store.BookingDetails)
	if err := c.BodyParser(details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	if details.ClientName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Name is required", nil))
	}
	if !utils.IsValidEmail(details.ClientEmail) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("A valid email is required", nil))
	}

	ctx := c.UserContext()
	slot, err := bc.store.BookSlot(ctx, uint(id), *details)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to book appointment", err))
	}

	// The claimed slot's date may have no openings left.
	bc.cache.InvalidateAvailableDates(ctx)

	return c.JSON(fiber.Map{
		"message":     "Appointment booked successfully",
		"booking_ref": slot.BookingRef,
		"date":        slot.Date.Format(dateLayout),
		"start_time":  slot.StartTime,
		"end_time":    slot.EndTime,
	})
}
