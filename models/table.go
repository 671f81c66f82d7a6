package models

import "time"

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

type Table struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TableNumber      string    `gorm:"type:varchar(50);unique;not null" json:"table_number"`
	Capacity         int       `gorm:"not null;default:2" json:"capacity"`
	Status           string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	QRSlug           string    `gorm:"type:varchar(64);unique;not null" json:"qr_slug"`
	CurrentSessionID *uint     `json:"current_session_id,omitempty"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
