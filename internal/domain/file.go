package domain

import "time"

// File types.
const (
	FileTypeImage = "IMAGE"
	FileTypeOther = "FILE"
)

// File is the database record for an uploaded object. Freshly uploaded files
// carry an expiry; claiming the file (attaching it to a product or avatar)
// clears the expiry, otherwise the cleanup job removes record and object.
type File struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	OriginalName string     `gorm:"size:512;not null" json:"originalName"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Path         string     `gorm:"size:512;not null" json:"path"`
	Type         string     `gorm:"size:32;not null" json:"type"`
	ExpiredDate  *time.Time `gorm:"index" json:"expiredDate,omitempty"`
	Audit
}
