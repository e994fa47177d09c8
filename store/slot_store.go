package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/topshelfent/booking-api/models"
)

// GormStore implements SlotStore on top of a GORM database handle. The
// handle is injected so tests can point it at an in-memory database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// dateOnly strips the clock from t so every stored and queried date is a
// UTC midnight and equality comparisons are exact.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// ListAvailableDates returns the distinct dates on or after from that
// still carry at least one open slot.
func (s *GormStore) ListAvailableDates(ctx context.Context, from time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.WithContext(ctx).Model(&models.Slot{}).
		Distinct("date").
		Where("is_available = ? AND is_booked = ? AND date >= ?", true, false, dateOnly(from)).
		Order("date").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return dates, nil
}

// ListSlotsForDate returns the open slots for an exact date, earliest
// first.
func (s *GormStore) ListSlotsForDate(ctx context.Context, date time.Time) ([]models.Slot, error) {
	var slots []models.Slot
	err := s.db.WithContext(ctx).
		Where("date = ? AND is_available = ? AND is_booked = ?", dateOnly(date), true, false).
		Order("start_time").
		Find(&slots).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return slots, nil
}

// BookSlot claims a slot for a visitor. The update is conditioned on the
// row still being open, so of two racing claims exactly one sees a row
// affected and the other gets ErrSlotAlreadyBooked.
func (s *GormStore) BookSlot(ctx context.Context, id uint, details BookingDetails) (*models.Slot, error) {
	ref := uuid.NewString()
	res := s.db.WithContext(ctx).Model(&models.Slot{}).
		Where("id = ? AND is_available = ? AND is_booked = ?", id, true, false).
		Updates(map[string]interface{}{
			"is_booked":    true,
			"client_name":  details.ClientName,
			"client_email": details.ClientEmail,
			"client_phone": details.ClientPhone,
			"notes":        details.Notes,
			"booking_ref":  ref,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Slot{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrSlotAlreadyBooked
	}
	return s.GetSlot(ctx, id)
}

func (s *GormStore) GetSlot(ctx context.Context, id uint) (*models.Slot, error) {
	var slot models.Slot
	if err := s.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &slot, nil
}

// ListOneOffSlots returns the owner's dated slots in [from, to],
// inclusive, booked or not.
func (s *GormStore) ListOneOffSlots(ctx context.Context, ownerID uint, from, to time.Time) ([]models.Slot, error) {
	var slots []models.Slot
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", ownerID, dateOnly(from), dateOnly(to)).
		Order("date, start_time").
		Find(&slots).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return slots, nil
}

func (s *GormStore) ListRecurringSlots(ctx context.Context, ownerID uint) ([]models.RecurringSlot, error) {
	var recs []models.RecurringSlot
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("weekday, start_time").
		Find(&recs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return recs, nil
}

func (s *GormStore) CreateSlot(ctx context.Context, slot *models.Slot) error {
	slot.Date = dateOnly(slot.Date)
	if err := s.db.WithContext(ctx).Create(slot).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// UpdateSlotTimes changes a slot's window. Booked slots are refused: a
// claimed window must not move silently under the client who booked it.
func (s *GormStore) UpdateSlotTimes(ctx context.Context, id, ownerID uint, start, end string) (*models.Slot, error) {
	slot, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.UserID != ownerID {
		return nil, ErrNotOwner
	}
	if slot.IsBooked {
		return nil, ErrSlotAlreadyBooked
	}
	res := s.db.WithContext(ctx).Model(&models.Slot{}).
		Where("id = ? AND is_booked = ?", id, false).
		Updates(map[string]interface{}{"start_time": start, "end_time": end})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrSlotAlreadyBooked
	}
	return s.GetSlot(ctx, id)
}

func (s *GormStore) SetSlotAvailability(ctx context.Context, id, ownerID uint, available bool) (*models.Slot, error) {
	slot, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.UserID != ownerID {
		return nil, ErrNotOwner
	}
	err = s.db.WithContext(ctx).Model(slot).Update("is_available", available).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return s.GetSlot(ctx, id)
}

func (s *GormStore) DeleteSlot(ctx context.Context, id, ownerID uint) error {
	slot, err := s.GetSlot(ctx, id)
	if err != nil {
		return err
	}
	if slot.UserID != ownerID {
		return ErrNotOwner
	}
	if slot.IsBooked {
		return ErrSlotAlreadyBooked
	}
	if err := s.db.WithContext(ctx).Delete(slot).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// FindOverlappingSlots returns the owner's open slots on date whose
// half-open window intersects [start, end). "HH:MM" strings compare
// correctly as text. excludeID skips the slot being edited.
func (s *GormStore) FindOverlappingSlots(ctx context.Context, ownerID uint, date time.Time, start, end string, excludeID uint) ([]models.Slot, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND is_available = ? AND start_time < ? AND end_time > ?",
			ownerID, dateOnly(date), true, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var slots []models.Slot
	if err := q.Find(&slots).Error; err != nil {
		return nil, storeErr(err)
	}
	return slots, nil
}

func (s *GormStore) CreateRecurringSlot(ctx context.Context, rec *models.RecurringSlot) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// UpdateRecurringSlot edits a template and drops its future unbooked
// materialized slots so the next materialization run rebuilds them from
// the new window. Booked slots stay as they were sold.
func (s *GormStore) UpdateRecurringSlot(ctx context.Context, id, ownerID uint, weekday models.Weekday, start, end string, active bool) (*models.RecurringSlot, error) {
	var rec models.RecurringSlot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return storeErr(err)
		}
		if rec.UserID != ownerID {
			return ErrNotOwner
		}
		updates := map[string]interface{}{
			"weekday":    weekday,
			"start_time": start,
			"end_time":   end,
			"is_active":  active,
		}
		if err := tx.Model(&rec).Updates(updates).Error; err != nil {
			return storeErr(err)
		}
		err := tx.Where("recurring_id = ? AND is_booked = ? AND date >= ?", id, false, dateOnly(time.Now())).
			Delete(&models.Slot{}).Error
		if err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) DeleteRecurringSlot(ctx context.Context, id, ownerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.RecurringSlot
		if err := tx.First(&rec, id).Error; err != nil {
			return storeErr(err)
		}
		if rec.UserID != ownerID {
			return ErrNotOwner
		}
		err := tx.Where("recurring_id = ? AND is_booked = ? AND date >= ?", id, false, dateOnly(time.Now())).
			Delete(&models.Slot{}).Error
		if err != nil {
			return storeErr(err)
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (s *GormStore) ListActiveRecurringSlots(ctx context.Context) ([]models.RecurringSlot, error) {
	var recs []models.RecurringSlot
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("weekday, start_time").
		Find(&recs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return recs, nil
}

func (s *GormStore) SlotExistsForTemplate(ctx context.Context, templateID uint, date time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Slot{}).
		Where("recurring_id = ? AND date = ?", templateID, dateOnly(date)).
		Count(&count).Error
	if err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}
