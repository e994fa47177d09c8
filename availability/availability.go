// Package availability computes the set of time windows offered for a
// calendar date by merging one-off slots with recurring weekly templates.
// It is pure: callers fetch the rows, this package only combines them.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/topshelfent/booking-api/models"
)

type Origin string

const (
	OriginOneOff    Origin = "one-off"
	OriginRecurring Origin = "recurring"
)

// OfferedSlot is a window presented to the caller, tagged with where it
// came from.
type OfferedSlot struct {
	ID        uint      `json:"id"`
	Origin    Origin    `json:"origin"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// ResolveForDate merges the one-off slots for a date with the recurring
// templates matching its weekday. Booked and owner-disabled slots are
// never offered. The result is sorted by start time so callers get one
// consistent ordering regardless of origin.
func ResolveForDate(date time.Time, oneOff []models.Slot, recurring []models.RecurringSlot) []OfferedSlot {
	day := Normalize(date)
	weekday := models.Weekday(day.Weekday())

	offered := make([]OfferedSlot, 0, len(oneOff)+len(recurring))
	for _, s := range oneOff {
		if !s.Open() {
			continue
		}
		offered = append(offered, OfferedSlot{
			ID:        s.ID,
			Origin:    OriginOneOff,
			Date:      day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	for _, r := range recurring {
		if r.Weekday != weekday || !r.IsActive {
			continue
		}
		offered = append(offered, OfferedSlot{
			ID:        r.ID,
			Origin:    OriginRecurring,
			Date:      day,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}

	sort.SliceStable(offered, func(i, j int) bool {
		return offered[i].StartTime < offered[j].StartTime
	})
	return offered
}

// IsDateSelectable reports whether a visitor may pick date in the booking
// calendar: it must not fall before today's calendar date and must carry
// at least one open slot. Dates are compared by calendar components in
// each value's own location, so a query date parsed as UTC midnight and a
// wall clock in a zone west of UTC still agree on what "today" is.
func IsDateSelectable(date, today time.Time, available []time.Time) bool {
	if beforeDay(date, today) {
		return false
	}
	for _, d := range available {
		if sameDay(d, date) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// Normalize returns a copy of t truncated to midnight in its location.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseClock parses a "HH:MM" 24h clock string into minutes since
// midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidWindow reports whether start and end are well-formed clock strings
// with start strictly before end.
func ValidWindow(start, end string) bool {
	s, err := ParseClock(start)
	if err != nil {
		return false
	}
	e, err := ParseClock(end)
	if err != nil {
		return false
	}
	return s < e
}

// Overlaps reports whether the half-open windows [aStart,aEnd) and
// [bStart,bEnd) intersect. Windows that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	as, err1 := ParseClock(aStart)
	ae, err2 := ParseClock(aEnd)
	bs, err3 := ParseClock(bStart)
	be, err4 := ParseClock(bEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return as < be && bs < ae
}
