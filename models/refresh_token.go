package models

import "time"

// RefreshToken is a rotating console session credential. Only the sha256 hex
// of the issued token is stored; a refresh revokes the matched row and inserts
// a replacement, so a replayed token fails the revoked check.
type RefreshToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint      `gorm:"index;not null"`
	TokenHash string    `gorm:"size:128;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
}
