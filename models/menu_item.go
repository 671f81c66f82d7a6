package models

import "time"

type MenuItem struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null" json:"category_id"`
	Category    Category     `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string       `gorm:"type:text" json:"description"`
	ImageURL    *string      `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	IsAvailable bool         `gorm:"not null;default:true" json:"is_available"`
	IsVeg       bool         `gorm:"not null;default:false" json:"is_veg"`
	Calories    int          `gorm:"not null;default:0" json:"calories"`
	Allergens   string       `gorm:"type:varchar(255)" json:"allergens"` // comma separated
	PrepMinutes int          `gorm:"not null;default:0" json:"prep_minutes"`
	Options     []MenuOption `gorm:"foreignKey:MenuItemID" json:"options"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// MenuOption is a customization choice on a menu item (e.g. extra cheese).
type MenuOption struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"`
	Name       string  `gorm:"type:varchar(100);not null" json:"name"`
	ExtraPrice float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"extra_price"`
}
