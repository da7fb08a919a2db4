package models

import "time"

// EventPerson links a Person to an Event with an optional role. Creating one
// also ensures a PersonPlace row for the event's place and date exists.
type EventPerson struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	EventID   uint      `gorm:"not null;index;uniqueIndex:uniq_event_person" json:"event_id"`
	PersonID  uint      `gorm:"not null;index;uniqueIndex:uniq_event_person" json:"person_id"`
	Role      string    `gorm:"size:100" json:"role"`
	Event     Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;" json:"-"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE;" json:"-"`
}

// TableName pins the table; the default naming strategy would inflect the
// "person" suffix to "event_people".
func (EventPerson) TableName() string { return "event_persons" }
