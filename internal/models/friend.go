package models

import "time"

// Friend is a contact shown on the globe at their current location.
type Friend struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Status    string    `gorm:"size:200" json:"status"`
	AvatarURL string    `json:"avatar_url"`
	Country   string    `gorm:"size:100" json:"country"`
	City      string    `gorm:"size:100" json:"city"`
	Lat       float64   `gorm:"not null" json:"lat"`
	Lng       float64   `gorm:"not null" json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Friend) TableName() string {
	return "friends"
}
