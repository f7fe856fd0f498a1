// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Postcard is a photo update shared by a student, pinned to the board and the globe.
type Postcard struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserName        string    `gorm:"size:100;not null" json:"user_name"`
	UserAvatar      string    `json:"user_avatar,omitempty"`
	Location        string    `gorm:"size:200;not null" json:"location"`
	Country         string    `gorm:"size:100;not null" json:"country"`
	ImageURL        string    `gorm:"not null" json:"image_url"`
	Caption         string    `gorm:"type:text;not null" json:"caption"`
	PersonalMessage string    `gorm:"type:text" json:"personal_message"`
	DateStamp       string    `gorm:"size:50" json:"date_stamp"`
	Lat             float64   `gorm:"not null" json:"lat"`
	Lng             float64   `gorm:"not null" json:"lng"`
	Likes           int       `gorm:"not null;default:0" json:"likes"`
	Comments        int       `gorm:"not null;default:0" json:"comments"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Postcard) TableName() string {
	return "postcards"
}

// LikeResponse is returned by the like endpoint.
type LikeResponse struct {
	Likes int `json:"likes"`
}
