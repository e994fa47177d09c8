package models

import (
	"gorm.io/gorm"
)

type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// RecurringSlot is a weekly availability template. It has no booking state
// of its own; bookings always land on the dated Slot rows materialized
// from it.
type RecurringSlot struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index"`
	User      User    `json:"-" gorm:"foreignKey:UserID"`
	Weekday   Weekday `json:"weekday"`    // 0 = Sunday .. 6 = Saturday
	StartTime string  `json:"start_time"` // Format "HH:MM" in 24h
	EndTime   string  `json:"end_time"`   // Format "HH:MM" in 24h
	IsActive  bool    `json:"is_active" gorm:"default:true"`
}
