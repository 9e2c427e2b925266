// Package store is the persistence boundary: site sections, the two ordered
// collections and the analytics log.
package store

import (
	"context"
	"errors"
	"time"

	"glamstudio-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by point reads and saves that match no row.
var ErrNotFound = errors.New("record not found")

type Sections interface {
	Get(ctx context.Context, section string) (*models.SiteContent, error)
	// Upsert replaces the document for content.Section. UpdatedAt is moved
	// past the stored value when it would not advance it, and on return
	// content mirrors the stored row.
	Upsert(ctx context.Context, content *models.SiteContent) error
}

// advance returns at, or the stored timestamp plus one microsecond when at
// would not move updated_at forward. Postgres keeps microseconds.
func advance(stored, at time.Time) time.Time {
	at = at.UTC().Truncate(time.Microsecond)
	if floor := stored.UTC().Truncate(time.Microsecond); !at.After(floor) {
		return floor.Add(time.Microsecond)
	}
	return at
}

// ListFilter narrows a collection listing.
type ListFilter struct {
	ActiveOnly bool
	// Group is the category for the gallery; ignored when empty.
	Group string
}

// Position is one entry of a batched reorder.
type Position struct {
	ID         uuid.UUID
	OrderIndex int
}

// Collection is an ordered set of items. List results are ascending by
// order_index, ties broken by creation time.
type Collection[T any] interface {
	List(ctx context.Context, filter ListFilter) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, item *T) error
	Save(ctx context.Context, item *T) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// SetOrder writes every position in one batch.
	SetOrder(ctx context.Context, positions []Position, at time.Time) error
}

type Events interface {
	Insert(ctx context.Context, event *models.AnalyticsEvent) error
	// Between returns events with start <= created_at <= end, oldest first.
	Between(ctx context.Context, start, end time.Time) ([]models.AnalyticsEvent, error)
}

// Store bundles the four tables. It is passed explicitly to every service.
type Store struct {
	Sections Sections
	Services Collection[models.ServiceItem]
	Gallery  Collection[models.GalleryImage]
	Events   Events
}
