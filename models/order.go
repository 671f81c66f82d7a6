package models

import (
	"math"
	"time"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Discount modes accepted on an order.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Order struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	SessionID uint         `gorm:"not null;index" json:"session_id"`
	Session   TableSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableID   uint         `gorm:"not null;index" json:"table_id"`
	Table     Table        `gorm:"foreignKey:TableID" json:"table"`
	Items     []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`

	Status string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Subtotal             float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"subtotal"`
	TaxPercent           float64 `gorm:"type:decimal(5,2);not null;default:0.00" json:"tax_percent"`
	TaxAmount            float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"tax_amount"`
	DiscountType         string  `gorm:"type:varchar(10);not null;default:'percentage'" json:"discount_type"`
	DiscountValue        float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"discount_value"`
	DiscountAmount       float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"discount_amount"`
	ServiceChargePercent float64 `gorm:"type:decimal(5,2);not null;default:0.00" json:"service_charge_percent"`
	ServiceChargeAmount  float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"service_charge_amount"`
	DeliveryCharge       float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"delivery_charge"`
	TotalAmount          float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`

	PlacedByID *uint `gorm:"index" json:"placed_by_id,omitempty"`
	PlacedBy   *User `gorm:"foreignKey:PlacedByID" json:"placed_by,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`
	ServedAt    *time.Time `json:"served_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Order      Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"` // snapshot at order time
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes      string    `gorm:"type:text" json:"notes"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateTotals recomputes the pricing fields from the line items.
// A fixed discount larger than the subtotal produces a negative total.
func (o *Order) CalculateTotals() {
	var subtotal float64
	for _, it := range o.Items {
		subtotal += float64(it.Quantity) * it.Price
	}
	o.Subtotal = round2(subtotal)
	o.TaxAmount = round2(subtotal * o.TaxPercent / 100)
	o.ServiceChargeAmount = round2(subtotal * o.ServiceChargePercent / 100)

	if o.DiscountType == DiscountFixed {
		o.DiscountAmount = round2(o.DiscountValue)
	} else {
		o.DiscountAmount = round2(subtotal * o.DiscountValue / 100)
	}

	o.TotalAmount = round2(o.Subtotal + o.TaxAmount + o.ServiceChargeAmount + o.DeliveryCharge - o.DiscountAmount)
}

// SetStatus moves the order to the given status and stamps the matching
// timestamp. Confirming cascades pending items to confirmed. The model layer
// does not forbid jumps; the cancel rule lives in the handler via CanCancel.
func (o *Order) SetStatus(status string, at time.Time) {
	o.Status = status
	switch status {
	case OrderConfirmed:
		o.ConfirmedAt = &at
		for i := range o.Items {
			if o.Items[i].Status == OrderPending {
				o.Items[i].Status = OrderConfirmed
			}
		}
	case OrderPreparing:
		o.PreparingAt = &at
	case OrderReady:
		o.ReadyAt = &at
	case OrderServed:
		o.ServedAt = &at
	case OrderCompleted:
		o.CompletedAt = &at
	case OrderCancelled:
		o.CancelledAt = &at
	}
	o.UpdatedAt = at
}

// CanCancel reports whether the order may still be cancelled. Only pending
// and confirmed orders qualify; anything already in the kitchen cannot.
func (o *Order) CanCancel() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
