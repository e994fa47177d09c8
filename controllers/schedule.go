package controllers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/availability"
	"github.com/topshelfent/booking-api/cron"
	"github.com/topshelfent/booking-api/models"
	"github.com/topshelfent/booking-api/redis"
	"github.com/topshelfent/booking-api/store"
	"github.com/topshelfent/booking-api/utils"
)

// ScheduleController is the owner-facing calendar: day view plus create,
// edit and delete of one-off slots and weekly templates. Every mutation
// is scoped to the authenticated owner.
type ScheduleController struct {
	store store.SlotStore
	cache *redis.Cache
}

func NewScheduleController(s store.SlotStore, cache *redis.Cache) *ScheduleController {
	return &ScheduleController{store: s, cache: cache}
}

func ownerID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// GetDay returns the merged one-off and recurring windows for one date,
// tagged by origin and sorted by start time.
func (sc *ScheduleController) GetDay(c *fiber.Ctx) error {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid or missing date, want YYYY-MM-DD", err))
	}

	ctx := c.UserContext()
	owner := ownerID(c)

	oneOff, err := sc.store.ListOneOffSlots(ctx, owner, date, date)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to load time slots", err))
	}
	recurring, err := sc.store.ListRecurringSlots(ctx, owner)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to load time slots", err))
	}

	// The resolver only offers open windows. Booked and owner-disabled
	// slots are listed separately so the owner still sees them.
	offered := availability.ResolveForDate(date, oneOff, recurring)
	closed := make([]models.Slot, 0)
	for _, s := range oneOff {
		if !s.Open() {
			closed = append(closed, s)
		}
	}
	return c.JSON(fiber.Map{"date": date.Format(dateLayout), "slots": offered, "closed": closed})
}

type slotInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateSlot adds a one-off window. The window must be well-formed and
// must not overlap another open window of the same owner on that date,
// one-off or recurring.
func (sc *ScheduleController) CreateSlot(c *fiber.Ctx) error {
	input := new(slotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid date, want YYYY-MM-DD", err))
	}
	if !availability.ValidWindow(input.StartTime, input.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Start time must be before end time, want HH:MM", nil))
	}

	ctx := c.UserContext()
	owner := ownerID(c)

	if err := sc.checkOverlap(ctx, owner, date, input.StartTime, input.EndTime, 0); err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to add time slot", err))
	}

	slot := models.Slot{
		UserID:      owner,
		Date:        date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsAvailable: true,
	}
	if err := sc.store.CreateSlot(ctx, &slot); err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to add time slot", err))
	}

	sc.cache.InvalidateAvailableDates(ctx)
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// UpdateSlot moves a one-off window. Only the owner may edit it, and
// booked slots are refused.
func (sc *ScheduleController) UpdateSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid slot id", err))
	}
	input := new(slotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	if !availability.ValidWindow(input.StartTime, input.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Start time must be before end time, want HH:MM", nil))
	}

	ctx := c.UserContext()
	owner := ownerID(c)
	existing, err := sc.store.GetSlot(ctx, uint(id))
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Time slot not found", err))
	}
	// Ownership first: a foreign slot must not leak an overlap verdict.
	if existing.UserID != owner {
		return c.Status(fiber.StatusForbidden).JSON(utils.NewErrorResponse("Time slot belongs to another user", nil))
	}
	if err := sc.checkOverlap(ctx, owner, existing.Date, input.StartTime, input.EndTime, existing.ID); err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to update time slot", err))
	}

	slot, err := sc.store.UpdateSlotTimes(ctx, uint(id), owner, input.StartTime, input.EndTime)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to update time slot", err))
	}

	sc.cache.InvalidateAvailableDates(ctx)
	return c.JSON(slot)
}

// SetSlotAvailability toggles the owner-controlled availability flag,
// independent of booking state.
func (sc *ScheduleController) SetSlotAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid slot id", err))
	}
	input := new(struct {
		IsAvailable bool `json:"is_available"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}

	ctx := c.UserContext()
	slot, err := sc.store.SetSlotAvailability(ctx, uint(id), ownerID(c), input.IsAvailable)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to update time slot", err))
	}

	sc.cache.InvalidateAvailableDates(ctx)
	return c.JSON(slot)
}

func (sc *ScheduleController) DeleteSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid slot id", err))
	}

	ctx := c.UserContext()
	if err := sc.store.DeleteSlot(ctx, uint(id), ownerID(c)); err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to delete time slot", err))
	}

	sc.cache.InvalidateAvailableDates(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}

type recurringInput struct {
	Weekday   models.Weekday `json:"weekday"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	IsActive  *bool          `json:"is_active"`
}

func (sc *ScheduleController) ListRecurring(c *fiber.Ctx) error {
	recs, err := sc.store.ListRecurringSlots(c.UserContext(), ownerID(c))
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to load recurring slots", err))
	}
	return c.JSON(recs)
}

func (sc *ScheduleController) CreateRecurring(c *fiber.Ctx) error {
	input := new(recurringInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	if input.Weekday < models.Sunday || input.Weekday > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Weekday must be 0 (Sunday) through 6 (Saturday)", nil))
	}
	if !availability.ValidWindow(input.StartTime, input.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Start time must be before end time, want HH:MM", nil))
	}

	rec := models.RecurringSlot{
		UserID:    ownerID(c),
		Weekday:   input.Weekday,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		IsActive:  true,
	}
	ctx := c.UserContext()
	if err := sc.store.CreateRecurringSlot(ctx, &rec); err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to add recurring slot", err))
	}

	sc.materialize(ctx)
	sc.cache.InvalidateAvailableDates(ctx)
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (sc *ScheduleController) UpdateRecurring(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid recurring slot id", err))
	}
	input := new(recurringInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	if input.Weekday < models.Sunday || input.Weekday > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Weekday must be 0 (Sunday) through 6 (Saturday)", nil))
	}
	if !availability.ValidWindow(input.StartTime, input.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Start time must be before end time, want HH:MM", nil))
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	ctx := c.UserContext()
	rec, err := sc.store.UpdateRecurringSlot(ctx, uint(id), ownerID(c), input.Weekday, input.StartTime, input.EndTime, active)
	if err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to update recurring slot", err))
	}

	sc.materialize(ctx)
	sc.cache.InvalidateAvailableDates(ctx)
	return c.JSON(rec)
}

// materialize runs one materialization pass so template edits reach the
// public flow right away instead of waiting for the daily job. The
// template itself is already saved, so a failure here only delays the
// dated slots until that job.
func (sc *ScheduleController) materialize(ctx context.Context) {
	if _, err := cron.MaterializeNow(ctx, sc.store); err != nil {
		log.Printf("Slot materialization after template change failed: %v", err)
	}
}

func (sc *ScheduleController) DeleteRecurring(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Invalid recurring slot id", err))
	}

	ctx := c.UserContext()
	if err := sc.store.DeleteRecurringSlot(ctx, uint(id), ownerID(c)); err != nil {
		return c.Status(storeStatus(err)).JSON(utils.NewErrorResponse("Failed to delete recurring slot", err))
	}

	sc.cache.InvalidateAvailableDates(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}

// checkOverlap returns store.ErrOverlap when the window intersects
// another open window of the owner on the same date, one-off or
// recurring, and nil when the window is clear.
func (sc *ScheduleController) checkOverlap(ctx context.Context, owner uint, date time.Time, start, end string, excludeID uint) error {
	conflicts, err := sc.store.FindOverlappingSlots(ctx, owner, date, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return store.ErrOverlap
	}

	recurring, err := sc.store.ListRecurringSlots(ctx, owner)
	if err != nil {
		return err
	}
	weekday := models.Weekday(availability.Normalize(date).Weekday())
	for _, rec := range recurring {
		if rec.Weekday != weekday || !rec.IsActive {
			continue
		}
		if availability.Overlaps(start, end, rec.StartTime, rec.EndTime) {
			return store.ErrOverlap
		}
	}
	return nil
}
