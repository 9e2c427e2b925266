package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/store"

	"github.com/google/uuid"
)

// =============================================================================
// Test doubles
// =============================================================================

var errStoreDown = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPublisher counts invalidations and reports the configured outcome.
type recordingPublisher struct {
	mu     sync.Mutex
	paths  []string
	result bool
}

func (p *recordingPublisher) Invalidate(_ context.Context, path string) Invalidation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	return Invalidation{Invalidated: p.result, Path: NormalizePath(path), Timestamp: time.Now()}
}

func (p *recordingPublisher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paths)
}

type failingSections struct{}

func (failingSections) Get(context.Context, string) (*models.SiteContent, error) {
	return nil, errStoreDown
}

func (failingSections) Upsert(context.Context, *models.SiteContent) error {
	return errStoreDown
}

type failingCollection[T any] struct{}

func (failingCollection[T]) List(context.Context, store.ListFilter) ([]T, error) {
	return nil, errStoreDown
}
func (failingCollection[T]) Get(context.Context, uuid.UUID) (*T, error) { return nil, errStoreDown }
func (failingCollection[T]) Count(context.Context) (int64, error)       { return 0, errStoreDown }
func (failingCollection[T]) Create(context.Context, *T) error           { return errStoreDown }
func (failingCollection[T]) Save(context.Context, *T) error             { return errStoreDown }
func (failingCollection[T]) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, errStoreDown
}
func (failingCollection[T]) SetOrder(context.Context, []store.Position, time.Time) error {
	return errStoreDown
}

type failingEvents struct{}

func (failingEvents) Insert(context.Context, *models.AnalyticsEvent) error { return errStoreDown }
func (failingEvents) Between(context.Context, time.Time, time.Time) ([]models.AnalyticsEvent, error) {
	return nil, errStoreDown
}

// outageCollection lists through to the wrapped collection except while down.
type outageCollection[T any] struct {
	store.Collection[T]
	down atomic.Bool
}

func (c *outageCollection[T]) List(ctx context.Context, filter store.ListFilter) ([]T, error) {
	if c.down.Load() {
		return nil, errStoreDown
	}
	return c.Collection.List(ctx, filter)
}

func failingStore() *store.Store {
	return &store.Store{
		Sections: failingSections{},
		Services: failingCollection[models.ServiceItem]{},
		Gallery:  failingCollection[models.GalleryImage]{},
		Events:   failingEvents{},
	}
}

func newTestContent(st *store.Store) (*ContentService, *recordingPublisher) {
	pub := &recordingPublisher{result: true}
	return NewContentService(st, pub, discardLogger()), pub
}

func newService(title string) *models.ServiceItem {
	return &models.ServiceItem{
		Title:       title,
		Description: title + " description",
		Features:    []string{"Consultation"},
		Price:       "From R500",
		Duration:    "1 hour",
		Icon:        "Star",
	}
}

func newImage(title, category string) *models.GalleryImage {
	return &models.GalleryImage{
		URL:      "https://images.example.com/" + uuid.NewString() + ".jpg",
		Alt:      title,
		Category: category,
		Title:    title,
	}
}
