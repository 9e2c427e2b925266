package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SiteContent is one named content slot. There is at most one row per Section.
type SiteContent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Section   string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"section"`
	Content   datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (SiteContent) TableName() string {
	return "site_content"
}

func (s *SiteContent) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
