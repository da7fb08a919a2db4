package models

import "time"

// Photo holds metadata for an uploaded image. All File* fields are derived
// from ImageRef on save and must never be set by callers directly.
type Photo struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ImageRef   string    `gorm:"size:500;not null" json:"image_ref"`
	FileName   string    `gorm:"size:255;index" json:"file_name"`
	FilePath   string    `gorm:"size:500" json:"file_path"`
	FileType   string    `gorm:"size:10" json:"file_type"` // png, jpg, jpeg or blank
	Caption    string    `gorm:"size:250" json:"caption"`
	UploadDate time.Time `gorm:"not null;index" json:"upload_date"`
	FileSize   *int64    `json:"file_size"` // nil when the size probe failed
	Width      int       `json:"width"`
	Height     int       `json:"height"`
}
