package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/store"

	"github.com/google/uuid"
)

// CollectionService manages one ordered collection (services or gallery).
type CollectionService[T any, P models.Item[T]] struct {
	name      models.Collection
	items     store.Collection[T]
	fallback  func(time.Time) []T
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewCollectionService[T any, P models.Item[T]](
	name models.Collection,
	items store.Collection[T],
	fallback func(time.Time) []T,
	publisher Publisher,
	logger *slog.Logger,
) *CollectionService[T, P] {
	return &CollectionService[T, P]{
		name:      name,
		items:     items,
		fallback:  fallback,
		publisher: publisher,
		logger:    logger.With("collection", string(name)),
		now:       time.Now,
	}
}

// Name is the table name of the collection.
func (s *CollectionService[T, P]) Name() models.Collection {
	return s.name
}

// ListActive is the public view: visible items ascending by order_index.
// A failed read yields the built-in sample list so the site never renders empty.
func (s *CollectionService[T, P]) ListActive(ctx context.Context) []T {
	items, _ := s.LoadActive(ctx)
	return items
}

// LoadActive is ListActive that also reports whether the sample list was
// served in place of stored data.
func (s *CollectionService[T, P]) LoadActive(ctx context.Context) (items []T, degraded bool) {
	items, err := s.items.List(ctx, store.ListFilter{ActiveOnly: true})
	if err != nil {
		s.logger.Warn("list failed, serving fallback items", "error", err)
		fallbackReads.WithLabelValues(string(s.name)).Inc()
		return s.fallback(s.now()), true
	}
	if items == nil {
		items = []T{}
	}
	return items, false
}

// ListAll is the admin view, including hidden items. group narrows to one
// category when the collection has categories.
func (s *CollectionService[T, P]) ListAll(ctx context.Context, group string) ([]T, error) {
	items, err := s.items.List(ctx, store.ListFilter{Group: group})
	if err != nil {
		return nil, &PersistenceError{Op: "list " + string(s.name), Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns one item or a NotFoundError.
func (s *CollectionService[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.notFound(id)
		}
		return nil, &PersistenceError{Op: "read " + string(s.name), Err: err}
	}
	return item, nil
}

// Create appends item to the end of the collection as a visible entry.
func (s *CollectionService[T, P]) Create(ctx context.Context, item *T) error {
	if err := models.Validate(item); err != nil {
		return validationFrom("item failed validation", err)
	}

	count, err := s.items.Count(ctx)
	if err != nil {
		return &PersistenceError{Op: "count " + string(s.name), Err: err}
	}

	base := P(item).Base()
	now := s.now().UTC()
	base.ID = uuid.Nil
	base.OrderIndex = int(count) + 1
	base.IsActive = true
	base.CreatedAt = now
	base.UpdatedAt = now

	err = s.items.Create(ctx, item)
	contentWrites.WithLabelValues(string(s.name), "create", outcome(err)).Inc()
	if err != nil {
		return &PersistenceError{Op: "create " + string(s.name), Err: err}
	}

	s.logger.Info("item created", "id", base.ID, "order_index", base.OrderIndex)
	publish(ctx, s.publisher, s.logger)
	return nil
}

// Update merges the fields set by apply into the stored item. Position and
// identity are not editable through apply.
func (s *CollectionService[T, P]) Update(ctx context.Context, id uuid.UUID, apply func(*T)) (*T, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	base := P(item).Base()
	orderIndex, createdAt := base.OrderIndex, base.CreatedAt
	apply(item)
	base.ID, base.OrderIndex, base.CreatedAt = id, orderIndex, createdAt

	if err := models.Validate(item); err != nil {
		return nil, validationFrom("item failed validation", err)
	}
	base.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, item, "update"); err != nil {
		return nil, err
	}
	publish(ctx, s.publisher, s.logger)
	return item, nil
}

// SetActive toggles visibility without touching order.
func (s *CollectionService[T, P]) SetActive(ctx context.Context, id uuid.UUID, active bool) (*T, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	base := P(item).Base()
	base.IsActive = active
	base.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, item, "set_active"); err != nil {
		return nil, err
	}
	s.logger.Info("item visibility changed", "id", id, "active", active)
	publish(ctx, s.publisher, s.logger)
	return item, nil
}

// Delete removes the item. Deleting an absent id succeeds. The remaining
// items are renumbered so positions stay contiguous.
func (s *CollectionService[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.items.Delete(ctx, id)
	contentWrites.WithLabelValues(string(s.name), "delete", outcome(err)).Inc()
	if err != nil {
		return &PersistenceError{Op: "delete " + string(s.name), Err: err}
	}
	if !removed {
		return nil
	}

	s.logger.Info("item deleted", "id", id)
	if err := s.Compact(ctx); err != nil {
		s.logger.Warn("compaction after delete failed", "error", err)
	}
	publish(ctx, s.publisher, s.logger)
	return nil
}

func (s *CollectionService[T, P]) save(ctx context.Context, item *T, op string) error {
	err := s.items.Save(ctx, item)
	contentWrites.WithLabelValues(string(s.name), op, outcome(err)).Inc()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(P(item).Base().ID)
		}
		return &PersistenceError{Op: op + " " + string(s.name), Err: err}
	}
	return nil
}

func (s *CollectionService[T, P]) notFound(id uuid.UUID) error {
	return &NotFoundError{Resource: string(s.name), ID: id.String()}
}
