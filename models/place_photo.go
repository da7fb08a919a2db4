package models

import "time"

// PlacePhoto attaches a Photo to a Place in a display slot 1..10. A place
// holds at most ten photos and slots are never renumbered automatically.
type PlacePhoto struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	PlaceID    uint      `gorm:"not null;index;uniqueIndex:uniq_place_photo;uniqueIndex:uniq_place_photo_order" json:"place_id"`
	PhotoID    uint      `gorm:"not null;index;uniqueIndex:uniq_place_photo" json:"photo_id"`
	PhotoOrder int       `gorm:"not null;uniqueIndex:uniq_place_photo_order" json:"photo_order"`
	Place      Place     `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE;" json:"-"`
	Photo      Photo     `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE;" json:"-"`
}
