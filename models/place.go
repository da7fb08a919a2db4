package models

import "time"

// Place is a historic site with a point location. DateStart/DateEnd bound the
// period of significance; when both are set DateEnd must not precede DateStart.
type Place struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PlaceName   string     `gorm:"size:50;not null;index" json:"place_name"`
	Latitude    float64    `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude   float64    `gorm:"type:decimal(11,8);not null" json:"longitude"`
	DateStart   *time.Time `gorm:"type:date" json:"date_start"`
	DateEnd     *time.Time `gorm:"type:date" json:"date_end"`
	Brief       string     `gorm:"size:250" json:"brief"`
	History     string     `gorm:"type:text" json:"history"`
}
