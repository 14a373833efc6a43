package models

import "time"

// CartItem is one line of a user's cart. A line is identified by the
// (user, product, color, size) variant key: re-adding the same variant
// increments Quantity instead of inserting a second row. Absent color/size
// are stored as empty strings so the composite unique index treats two
// "no variant" adds as the same line.
type CartItem struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"cart_id"`
	UserID          string    `gorm:"uniqueIndex:idx_cart_variant;not null" json:"user_id"`
	ProductID       uint      `gorm:"uniqueIndex:idx_cart_variant;not null" json:"product_id"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	Color           string    `gorm:"uniqueIndex:idx_cart_variant;not null;default:''" json:"color,omitempty"`
	Size            string    `gorm:"uniqueIndex:idx_cart_variant;not null;default:''" json:"size,omitempty"`
	ShippingCost    float64   `json:"shipping_cost"`
	ShippingAddress string    `json:"shipping_address"`
	UpdatedAt       time.Time `json:"updated_at"`
}
