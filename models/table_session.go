package models

import "time"

const (
	SessionActive = "active"
	SessionBilled = "billed"
	SessionClosed = "closed"
)

// TableSession is one continuous occupancy of a table, spanning one or more
// orders and closed at payment.
type TableSession struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TableID     uint       `gorm:"not null;index" json:"table_id"`
	Table       Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	SessionKey  string     `gorm:"type:varchar(64);unique;not null" json:"session_key"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	GuestCount  int        `gorm:"not null;default:1" json:"guest_count"`
	TotalAmount float64    `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	Orders      []Order    `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
}

// RecalculateTotal sums the totals of the attached non-cancelled orders.
// Callers must persist the session afterwards; nothing keeps this in sync
// automatically.
func (s *TableSession) RecalculateTotal() {
	var total float64
	for _, o := range s.Orders {
		if o.Status != OrderCancelled {
			total += o.TotalAmount
		}
	}
	s.TotalAmount = round2(total)
}
