package services

import (
	"context"
	"sort"

	"glamstudio-backend/models"
	"glamstudio-backend/store"

	"github.com/google/uuid"
)

// PlanReorder computes the positions for a new ordering of the displayed
// items. ids must be a permutation of current.
//
// For the whole collection, position i gets order_index i+1. For a filtered
// view (one category) the view's existing order_index slots are handed out in
// the new order, so items outside the view keep their positions.
func PlanReorder[T any, P models.Item[T]](current []T, ids []uuid.UUID, filtered bool) ([]store.Position, error) {
	if len(ids) != len(current) {
		return nil, invalid("ordering must list every displayed item exactly once")
	}

	known := make(map[uuid.UUID]struct{}, len(current))
	slots := make([]int, 0, len(current))
	for i := range current {
		base := P(&current[i]).Base()
		known[base.ID] = struct{}{}
		slots = append(slots, base.OrderIndex)
	}
	sort.Ints(slots)

	seen := make(map[uuid.UUID]struct{}, len(ids))
	positions := make([]store.Position, 0, len(ids))
	for i, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, invalid("ordering contains an unknown item: " + id.String())
		}
		if _, dup := seen[id]; dup {
			return nil, invalid("ordering lists an item twice: " + id.String())
		}
		seen[id] = struct{}{}

		index := i + 1
		if filtered {
			index = slots[i]
		}
		positions = append(positions, store.Position{ID: id, OrderIndex: index})
	}
	return positions, nil
}

// Reorder persists a new ordering of the displayed items (the whole
// collection when group is empty, otherwise one category) and returns the
// authoritative order from the store. On a PersistenceError the caller must
// re-fetch instead of trusting its local ordering.
func (s *CollectionService[T, P]) Reorder(ctx context.Context, ids []uuid.UUID, group string) ([]T, error) {
	current, err := s.items.List(ctx, store.ListFilter{Group: group})
	if err != nil {
		return nil, &PersistenceError{Op: "list " + string(s.name), Err: err}
	}

	positions, err := PlanReorder[T, P](current, ids, group != "")
	if err != nil {
		return nil, err
	}

	err = s.items.SetOrder(ctx, positions, s.now().UTC())
	contentWrites.WithLabelValues(string(s.name), "reorder", outcome(err)).Inc()
	if err != nil {
		return nil, &PersistenceError{Op: "reorder " + string(s.name), Err: err}
	}

	s.logger.Info("collection reordered", "items", len(positions), "group", group)
	publish(ctx, s.publisher, s.logger)
	return s.ListAll(ctx, group)
}

// Compact renumbers the whole collection 1..n in its current order, writing
// only the rows whose position changes.
func (s *CollectionService[T, P]) Compact(ctx context.Context) error {
	current, err := s.items.List(ctx, store.ListFilter{})
	if err != nil {
		return &PersistenceError{Op: "list " + string(s.name), Err: err}
	}

	var changed []store.Position
	for i := range current {
		base := P(&current[i]).Base()
		if base.OrderIndex != i+1 {
			changed = append(changed, store.Position{ID: base.ID, OrderIndex: i + 1})
		}
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.items.SetOrder(ctx, changed, s.now().UTC()); err != nil {
		return &PersistenceError{Op: "compact " + string(s.name), Err: err}
	}
	return nil
}
