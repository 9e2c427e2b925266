package models

import (
	"gorm.io/datatypes"
)

// ServiceIcons is the closed set of icon names the public site can render.
var ServiceIcons = []string{"Scissors", "Palette", "Crown", "Sparkles", "Heart", "Star"}

type ServiceItem struct {
	OrderedItem
	Title       string                      `gorm:"not null" json:"title" validate:"required,max=120"`
	Description string                      `gorm:"type:text" json:"description"`
	Features    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"features" validate:"max=12,dive,required"`
	Price       string                      `json:"price"`    // display text, e.g. "From R800"
	Duration    string                      `json:"duration"` // display text, e.g. "2-4 hours"
	Icon        string                      `gorm:"type:varchar(32);not null;default:'Scissors'" json:"icon" validate:"required,service_icon"`
}

func (ServiceItem) TableName() string {
	return "services"
}

func (s *ServiceItem) Group() string {
	return ""
}
