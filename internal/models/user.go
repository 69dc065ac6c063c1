package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	PhoneNumber  string `gorm:"size:20" json:"phone_number"`

	Cars []Car `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
