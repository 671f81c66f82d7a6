package models

import (
	"strings"
	"time"
)

// Category groups menu items and routes them to a kitchen station. The
// availability window limits when items in the category can be ordered.
type Category struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	DisplayOrder   int       `gorm:"not null;default:0" json:"display_order"`
	KitchenStation string    `gorm:"type:varchar(50);not null;default:'main'" json:"kitchen_station"`
	AvailableFrom  string    `gorm:"type:varchar(5)" json:"available_from"` // "HH:MM", empty = always
	AvailableTo    string    `gorm:"type:varchar(5)" json:"available_to"`
	ActiveDays     string    `gorm:"type:varchar(100)" json:"active_days"` // comma separated weekday names, empty = all
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// IsAvailableAt checks the time/day window against the given moment.
func (cat *Category) IsAvailableAt(t time.Time) bool {
	if !cat.IsActive {
		return false
	}
	if cat.ActiveDays != "" {
		day := strings.ToLower(t.Weekday().String())
		found := false
		for _, d := range strings.Split(cat.ActiveDays, ",") {
			if strings.TrimSpace(strings.ToLower(d)) == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cat.AvailableFrom == "" || cat.AvailableTo == "" {
		return true
	}
	clock := t.Format("15:04")
	if cat.AvailableFrom <= cat.AvailableTo {
		return clock >= cat.AvailableFrom && clock <= cat.AvailableTo
	}
	// window crosses midnight
	return clock >= cat.AvailableFrom || clock <= cat.AvailableTo
}
