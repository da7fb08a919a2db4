package models

import "time"

// Role represents account roles with numeric primary key. "administrator"
// grants the full console, "editor" the restricted content console.
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}
