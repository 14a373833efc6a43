package models

import "time"

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Name         string     `json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	OTP          string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}
