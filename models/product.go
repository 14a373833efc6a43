package models

import "time"

type Product struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	Price            float64   `gorm:"not null" json:"price"`
	ProductImg       string    `json:"product_img"`
	CategoryID       uint      `gorm:"index" json:"category_id"`
	ProductsCategory string    `json:"products_category"` // subcategory slug, e.g. "dress"
	IsFeatured       bool      `json:"is_featured"`
	IsRecommended    bool      `json:"is_recommended"`
	TopCollection    bool      `json:"top_collection"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
