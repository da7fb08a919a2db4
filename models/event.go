package models

import "time"

// Significance levels for an Event.
const (
	SignificanceLocal    = "LOCAL"
	SignificanceRegional = "REGIONAL"
	SignificanceNational = "NATIONAL"
	SignificanceGlobal   = "GLOBAL"
)

// Event is something that happened at a Place. The place reference is
// mandatory and protected: a Place with events cannot be deleted.
type Event struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	EventName        string    `gorm:"size:100;not null" json:"event_name"`
	EventDate        time.Time `gorm:"type:date;not null;index" json:"event_date"`
	EventDescription string    `gorm:"type:text;not null" json:"event_description"`
	Significance     string    `gorm:"size:50" json:"significance"`
	PlaceID          uint      `gorm:"not null;index" json:"place_id"`
	Place            Place     `gorm:"foreignKey:PlaceID;references:ID" json:"-"`
}
