package model

import "time"

type FileMetadata struct {
	ID uint64 `gorm:"primaryKey" json:"id,omitempty"`

	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex:uk_owner_name,priority:1" json:"user_id,omitempty"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	// Name is unique per owner, not globally: buckets are already scoped
	// per user, so two users may hold the same file name.
	Name string `gorm:"column:name;size:255;not null;uniqueIndex:uk_owner_name,priority:2" json:"name,omitempty"`

	Size int64 `gorm:"column:size;not null;default:0" json:"size,omitempty"`

	MimeType string `gorm:"column:mime_type;size:255;not null;default:''" json:"mime_type,omitempty"`

	Location string `gorm:"column:location;size:1024;not null;default:''" json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (FileMetadata) TableName() string {
	return "files_metadata"
}
