package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/topshelfent/booking-api/models"
	"github.com/topshelfent/booking-api/store"
)

// How far ahead recurring templates are turned into bookable slots.
// Visitors always see at least four weeks of availability.
const materializeDaysAhead = 28

// StartCronJobs runs the recurring-slot materializer once at startup and
// then daily.
func StartCronJobs(s store.SlotStore) {
	runMaterializer(s)

	c := cron.New()
	_, err := c.AddFunc("@daily", func() { runMaterializer(s) })
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron scheduler started for recurring slot materialization")
}

func runMaterializer(s store.SlotStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, err := MaterializeNow(ctx, s)
	if err != nil {
		log.Printf("Slot materialization failed: %v", err)
		return
	}
	log.Printf("Slot materialization done, %d slots created", created)
}

// MaterializeNow runs one materialization pass over the standard window,
// starting from the current clock. Template edits call this so new
// windows become bookable immediately.
func MaterializeNow(ctx context.Context, s store.SlotStore) (int, error) {
	return MaterializeRecurringSlots(ctx, s, time.Now(), materializeDaysAhead)
}

// MaterializeRecurringSlots creates a dated slot for every active weekly
// template on each matching weekday within daysAhead of from. Dates that
// already carry a slot from the same template are skipped, so the job is
// safe to run repeatedly. Returns the number of slots created.
func MaterializeRecurringSlots(ctx context.Context, s store.SlotStore, from time.Time, daysAhead int) (int, error) {
	templates, err := s.ListActiveRecurringSlots(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for _, tpl := range templates {
		for offset := 0; offset < daysAhead; offset++ {
			date := start.AddDate(0, 0, offset)
			if models.Weekday(date.Weekday()) != tpl.Weekday {
				continue
			}
			exists, err := s.SlotExistsForTemplate(ctx, tpl.ID, date)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}
			templateID := tpl.ID
			slot := models.Slot{
				UserID:      tpl.UserID,
				Date:        date,
				StartTime:   tpl.StartTime,
				EndTime:     tpl.EndTime,
				IsAvailable: true,
				RecurringID: &templateID,
			}
			if err := s.CreateSlot(ctx, &slot); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
