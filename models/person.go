package models

import "time"

// Person is a historic figure. ProfilePhotoID points at a Photo used as the
// portrait; the reference is exclusive (no two persons share a portrait) and
// is cleared (not cascaded) when that Photo is deleted.
type Person struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	FirstName      string     `gorm:"size:25;not null;index:idx_people_name" json:"first_name"`
	LastName       string     `gorm:"size:25;not null;index:idx_people_name,priority:1" json:"last_name"`
	DOB            *time.Time `gorm:"type:date" json:"dob"`
	Brief          string     `gorm:"size:250" json:"brief"`
	Biography      string     `gorm:"type:text" json:"biography"`
	ProfilePhotoID *uint      `gorm:"uniqueIndex" json:"profile_photo_id"`
	ProfilePhoto   *Photo     `gorm:"foreignKey:ProfilePhotoID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
