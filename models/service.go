package models

import (
	"gorm.io/gorm"
)

// Service is an event package shown on the marketing site (wedding,
// corporate party, school dance and so on).
type Service struct {
	gorm.Model
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	IsPopular     bool    `json:"is_popular"`
	ProviderID    uint    `json:"provider_id"`
	Provider      User    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}
