package models

import "time"

// PersonPlace links a Person to a Place, optionally on a date. The same
// person/place pair may repeat only with distinct association dates.
// Rows with AssociationType "via_event" are derived from EventPerson saves.
type PersonPlace struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PersonID        uint       `gorm:"not null;index;uniqueIndex:uniq_person_place_date" json:"person_id"`
	PlaceID         uint       `gorm:"not null;index;uniqueIndex:uniq_person_place_date" json:"place_id"`
	AssociationDate *time.Time `gorm:"type:date;uniqueIndex:uniq_person_place_date" json:"association_date"`
	AssociationType string     `gorm:"size:50" json:"association_type"`
	Person          Person     `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE;" json:"-"`
	Place           Place      `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE;" json:"-"`
}
