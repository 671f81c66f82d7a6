package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentUPI   = "upi"
	PaymentQRIS  = "qris"
	PaymentSplit = "split"
)

const (
	BillPending = "pending"
	BillPaid    = "paid"
)

// Bill is a finalized snapshot of one or more orders of a session. The item
// rows are copied from the orders at generation time so later menu edits
// cannot change a settled bill.
type Bill struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	BillNumber string       `gorm:"type:varchar(40);unique;not null" json:"bill_number"`
	SessionID  uint         `gorm:"not null;index" json:"session_id"`
	Session    TableSession `gorm:"foreignKey:SessionID" json:"-"`
	OrderIDs   string       `gorm:"type:varchar(255);not null" json:"order_ids"` // comma separated
	Items      []BillItem   `gorm:"foreignKey:BillID" json:"items"`

	Subtotal            float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"subtotal"`
	TaxAmount           float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"tax_amount"`
	DiscountAmount      float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"discount_amount"`
	ServiceChargeAmount float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"service_charge_amount"`
	TotalAmount         float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`

	PaymentMode   string  `gorm:"type:varchar(10);not null;default:'cash'" json:"payment_mode"`
	PaymentStatus string  `gorm:"type:varchar(10);not null;default:'pending'" json:"payment_status"`
	CashAmount    float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"cash_amount"`
	CardAmount    float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"card_amount"`
	UPIAmount     float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"upi_amount"`
	QRCode        string  `gorm:"type:text" json:"qr_code,omitempty"`            // raw QRIS payload
	ReferenceID   string  `gorm:"type:varchar(100)" json:"reference_id"`         // gateway transaction id

	SettledByID *uint      `json:"settled_by_id,omitempty"`
	SettledBy   *User      `gorm:"foreignKey:SettledByID" json:"settled_by,omitempty"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type BillItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	BillID     uint    `gorm:"not null;index" json:"bill_id"`
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal   float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// RoundAmounts normalizes the accumulated money fields to 2dp. Summing
// order totals in binary floats drifts off the displayed amount otherwise.
func (b *Bill) RoundAmounts() {
	b.Subtotal = round2(b.Subtotal)
	b.TaxAmount = round2(b.TaxAmount)
	b.DiscountAmount = round2(b.DiscountAmount)
	b.ServiceChargeAmount = round2(b.ServiceChargeAmount)
	b.TotalAmount = round2(b.TotalAmount)
}

// SplitTotal sums the per-mode amounts of a split payment.
func (b *Bill) SplitTotal() float64 {
	return round2(b.CashAmount + b.CardAmount + b.UPIAmount)
}

// SplitCoversTotal reports whether the split amounts pay the bill in full.
// Comparison is within half a cent; exact float equality rejects payments
// that match the displayed total.
func (b *Bill) SplitCoversTotal() bool {
	return math.Abs(b.SplitTotal()-b.TotalAmount) < 0.005
}

// GenerateBillNumber builds a unique, human-sortable bill number.
func GenerateBillNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("BILL-%s-%s", now.Format("20060102"), suffix)
}
