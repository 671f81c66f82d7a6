package models

import "time"

const (
	StockIn      = "in-stock"
	StockLow     = "low-stock"
	StockOut     = "out-of-stock"
	StockExpired = "expired"
)

const (
	StockEntryAdd    = "add"
	StockEntryRemove = "remove"
)

type Ingredient struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"type:varchar(100);unique;not null" json:"name"`
	Quantity      float64      `gorm:"type:decimal(12,3);not null;default:0.000" json:"quantity"`
	Unit          string       `gorm:"type:varchar(20);not null" json:"unit"`
	MinStockLevel float64      `gorm:"type:decimal(12,3);not null;default:0.000" json:"min_stock_level"`
	ReorderPoint  float64      `gorm:"type:decimal(12,3);not null;default:0.000" json:"reorder_point"`
	MaxStockLevel float64      `gorm:"type:decimal(12,3);not null;default:0.000" json:"max_stock_level"`
	CostPerUnit   float64      `gorm:"type:decimal(10,2);not null;default:0.00" json:"cost_per_unit"`
	ExpiryDate    *time.Time   `json:"expiry_date,omitempty"`
	Status        string       `gorm:"type:varchar(20);not null;default:'in-stock'" json:"status"`
	StockHistory  []StockEntry `gorm:"foreignKey:IngredientID" json:"stock_history,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

// StockEntry is one line of the append-only stock ledger. Quantity holds the
// requested delta (negative for removals), which can differ from the applied
// delta when a removal floors at zero.
type StockEntry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	IngredientID     uint      `gorm:"not null;index" json:"ingredient_id"`
	Type             string    `gorm:"type:varchar(10);not null" json:"type"`
	Quantity         float64   `gorm:"type:decimal(12,3);not null" json:"quantity"`
	PreviousQuantity float64   `gorm:"type:decimal(12,3);not null" json:"previous_quantity"`
	NewQuantity      float64   `gorm:"type:decimal(12,3);not null" json:"new_quantity"`
	Note             string    `gorm:"type:varchar(255)" json:"note"`
	RecordedByID     *uint     `json:"recorded_by_id,omitempty"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

// AddStock increases the running quantity and returns the ledger entry.
func (ing *Ingredient) AddStock(qty float64, note string, recordedBy *uint, now time.Time) StockEntry {
	entry := StockEntry{
		IngredientID:     ing.ID,
		Type:             StockEntryAdd,
		Quantity:         qty,
		PreviousQuantity: ing.Quantity,
		Note:             note,
		RecordedByID:     recordedBy,
		CreatedAt:        now,
	}
	ing.Quantity += qty
	entry.NewQuantity = ing.Quantity
	ing.RefreshStatus(now)
	ing.UpdatedAt = now
	return entry
}

// RemoveStock decreases the running quantity, flooring at zero. The entry
// records the requested delta even when only part of it could be applied;
// the insufficient-stock rejection belongs to the handler, not here.
func (ing *Ingredient) RemoveStock(qty float64, note string, recordedBy *uint, now time.Time) StockEntry {
	entry := StockEntry{
		IngredientID:     ing.ID,
		Type:             StockEntryRemove,
		Quantity:         -qty,
		PreviousQuantity: ing.Quantity,
		Note:             note,
		RecordedByID:     recordedBy,
		CreatedAt:        now,
	}
	ing.Quantity -= qty
	if ing.Quantity < 0 {
		ing.Quantity = 0
	}
	entry.NewQuantity = ing.Quantity
	ing.RefreshStatus(now)
	ing.UpdatedAt = now
	return entry
}

// RefreshStatus derives the status field. Expiry wins over quantity.
func (ing *Ingredient) RefreshStatus(now time.Time) {
	if ing.ExpiryDate != nil && ing.ExpiryDate.Before(now) {
		ing.Status = StockExpired
		return
	}
	switch {
	case ing.Quantity <= 0:
		ing.Status = StockOut
	case ing.Quantity <= ing.MinStockLevel:
		ing.Status = StockLow
	default:
		ing.Status = StockIn
	}
}

// NeedsReorder reports whether the quantity fell to the reorder point.
func (ing *Ingredient) NeedsReorder() bool {
	return ing.Quantity <= ing.ReorderPoint
}
