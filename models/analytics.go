package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventPageView      = "page_view"
	EventWhatsAppClick = "whatsapp_click"
)

// AnalyticsEvent is an append-only interaction record.
type AnalyticsEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EventType string         `gorm:"type:varchar(64);index;not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"type:jsonb" json:"event_data"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "admin_analytics"
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
