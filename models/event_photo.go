package models

import "time"

// EventPhoto attaches a Photo to an Event in a display slot 1..10, with the
// same slot rules as PlacePhoto.
type EventPhoto struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	EventID    uint      `gorm:"not null;index;uniqueIndex:uniq_event_photo;uniqueIndex:uniq_event_photo_order" json:"event_id"`
	PhotoID    uint      `gorm:"not null;index;uniqueIndex:uniq_event_photo" json:"photo_id"`
	PhotoOrder int       `gorm:"not null;uniqueIndex:uniq_event_photo_order" json:"photo_order"`
	Event      Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;" json:"-"`
	Photo      Photo     `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE;" json:"-"`
}
