package models

import "time"

type Order struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber       string    `gorm:"unique;not null" json:"order_number"`
	UserID            string    `gorm:"index;not null" json:"user_id"`
	Subtotal          float64   `json:"subtotal"`
	ShippingCost      float64   `json:"shipping_cost"`
	Status            string    `gorm:"default:'Pending'" json:"status"`
	DetailsOfProducts string    `gorm:"type:jsonb" json:"details_of_products"` // frozen cart snapshot, never updated
	CreatedAt         time.Time `json:"created_at"`
}

// OrderLine is one entry of an order's DetailsOfProducts snapshot: the cart
// line joined with the product name and price as they were at order time.
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
