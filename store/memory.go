package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"glamstudio-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NewMemory returns a process-local Store. It backs STORE_DRIVER=memory and
// the test suites.
func NewMemory() *Store {
	return &Store{
		Sections: &memorySections{rows: map[string]models.SiteContent{}},
		Services: newMemoryCollection[models.ServiceItem](),
		Gallery:  newMemoryCollection[models.GalleryImage](),
		Events:   &memoryEvents{},
	}
}

type memorySections struct {
	mu   sync.RWMutex
	rows map[string]models.SiteContent
}

func (s *memorySections) Get(_ context.Context, section string) (*models.SiteContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[section]
	if !ok {
		return nil, ErrNotFound
	}
	row.Content = cloneJSON(row.Content)
	return &row, nil
}

func (s *memorySections) Upsert(_ context.Context, content *models.SiteContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.rows[content.Section]; ok {
		content.ID = existing.ID
		content.CreatedAt = existing.CreatedAt
		content.UpdatedAt = advance(existing.UpdatedAt, content.UpdatedAt)
	} else {
		if content.ID == uuid.Nil {
			content.ID = uuid.New()
		}
		if content.CreatedAt.IsZero() {
			content.CreatedAt = content.UpdatedAt
		}
	}
	row := *content
	row.Content = cloneJSON(content.Content)
	s.rows[content.Section] = row
	return nil
}

func cloneJSON(raw datatypes.JSON) datatypes.JSON {
	if raw == nil {
		return nil
	}
	return append(datatypes.JSON(nil), raw...)
}

// cloneRow detaches the slices of a collection row from the stored copy.
func cloneRow[T any](row T) T {
	if item, ok := any(&row).(*models.ServiceItem); ok && item.Features != nil {
		item.Features = append(datatypes.JSONSlice[string](nil), item.Features...)
	}
	return row
}

type memoryCollection[T any, P models.Item[T]] struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]T
	// seq records insertion order, the in-memory stand-in for created_at ties.
	seq  map[uuid.UUID]int64
	next int64
}

func newMemoryCollection[T any, P models.Item[T]]() *memoryCollection[T, P] {
	return &memoryCollection[T, P]{
		rows: map[uuid.UUID]T{},
		seq:  map[uuid.UUID]int64{},
	}
}

func (c *memoryCollection[T, P]) List(_ context.Context, filter ListFilter) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, 0, len(c.rows))
	for _, row := range c.rows {
		p := P(&row)
		if filter.ActiveOnly && !p.Base().IsActive {
			continue
		}
		if filter.Group != "" && p.Group() != filter.Group {
			continue
		}
		items = append(items, cloneRow(row))
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := P(&items[i]).Base(), P(&items[j]).Base()
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		return c.seq[a.ID] < c.seq[b.ID]
	})
	return items, nil
}

func (c *memoryCollection[T, P]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	row, ok := c.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	row = cloneRow(row)
	return &row, nil
}

func (c *memoryCollection[T, P]) Count(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.rows)), nil
}

func (c *memoryCollection[T, P]) Create(_ context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := P(item).Base()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = now
	}
	c.next++
	c.seq[base.ID] = c.next
	c.rows[base.ID] = cloneRow(*item)
	return nil
}

func (c *memoryCollection[T, P]) Save(_ context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := P(item).Base()
	existing, ok := c.rows[base.ID]
	if !ok {
		return ErrNotFound
	}
	base.CreatedAt = P(&existing).Base().CreatedAt
	c.rows[base.ID] = cloneRow(*item)
	return nil
}

func (c *memoryCollection[T, P]) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		return false, nil
	}
	delete(c.rows, id)
	delete(c.seq, id)
	return true, nil
}

func (c *memoryCollection[T, P]) SetOrder(_ context.Context, positions []Position, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pos := range positions {
		row, ok := c.rows[pos.ID]
		if !ok {
			continue
		}
		base := P(&row).Base()
		base.OrderIndex = pos.OrderIndex
		base.UpdatedAt = at
		c.rows[pos.ID] = row
	}
	return nil
}

type memoryEvents struct {
	mu     sync.RWMutex
	events []models.AnalyticsEvent
}

func (e *memoryEvents) Insert(_ context.Context, event *models.AnalyticsEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	e.events = append(e.events, *event)
	return nil
}

func (e *memoryEvents) Between(_ context.Context, start, end time.Time) ([]models.AnalyticsEvent, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.AnalyticsEvent
	for _, ev := range e.events {
		if ev.CreatedAt.Before(start) || ev.CreatedAt.After(end) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
