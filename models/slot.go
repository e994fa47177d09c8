package models

import (
	"time"

	"gorm.io/gorm"
)

// Slot is a concrete bookable time window on a calendar date. One-off slots
// are created by the owner directly; slots materialized from a weekly
// template carry the template's ID in RecurringID.
type Slot struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Date        time.Time `json:"date" gorm:"type:date;index"`
	StartTime   string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime     string    `json:"end_time"`   // Format "HH:MM" in 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	IsBooked    bool      `json:"is_booked" gorm:"default:false"`
	RecurringID *uint     `json:"recurring_id"`

	// Client contact details, empty until the slot is claimed.
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	Notes       string `json:"notes"`
	BookingRef  string `json:"booking_ref"`
}

// Open reports whether the slot can still be offered to visitors.
func (s *Slot) Open() bool {
	return s.IsAvailable && !s.IsBooked
}
