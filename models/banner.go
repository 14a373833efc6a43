package models

type Banner struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Position    string `gorm:"not null" json:"position"`
	CategoryID  uint   `gorm:"index" json:"category_id"`
	BannerImg   string `gorm:"type:jsonb" json:"banner_img"` // JSON array of image URLs
}
