package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderedItem holds the columns shared by every ordered collection: identity,
// display position and public visibility.
type OrderedItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"order_index"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Base exposes the shared columns of any type embedding OrderedItem.
func (o *OrderedItem) Base() *OrderedItem {
	return o
}

// Initialize UUID before creating
func (o *OrderedItem) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// Item is satisfied by pointers to collection rows (*ServiceItem, *GalleryImage).
type Item[T any] interface {
	*T
	Base() *OrderedItem
	// Group is the filter key used by the admin views ("" when the
	// collection has no categories).
	Group() string
}

// Collection names as used in routes, logs and metrics.
type Collection string

const (
	CollectionServices Collection = "services"
	CollectionGallery  Collection = "gallery_images"
)
