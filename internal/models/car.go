package models

import "time"

// Car dates are kept as plain ISO strings rather than time.Time: the
// store inherited from the previous deployment holds them as text and
// proj_pickup_date accepts free-form values.
type Car struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Color          string `gorm:"size:50" json:"color"`
	Make           string `gorm:"size:100;not null" json:"make"`
	Model          string `gorm:"size:100;not null" json:"model"`
	Year           string `gorm:"size:10" json:"year"`
	Notes          string `gorm:"size:150" json:"notes"`
	DateAdded      string `gorm:"size:20" json:"date_added"`
	ProjPickupDate string `gorm:"size:20" json:"proj_pickup_date"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	Owner  User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
