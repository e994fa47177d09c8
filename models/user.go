package models

import (
	"time"
)

type User struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name"`
	Email          string          `json:"email" gorm:"unique"`
	Password       string          `json:"password,omitempty"`
	Bio            string          `json:"bio"`
	AvatarURL      string          `json:"avatar_url"`
	Slots          []Slot          `json:"slots,omitempty" gorm:"foreignKey:UserID"`
	RecurringSlots []RecurringSlot `json:"recurring_slots,omitempty" gorm:"foreignKey:UserID"`
	Services       []Service       `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
