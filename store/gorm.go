package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"glamstudio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGorm builds a Store over a gorm connection.
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Sections: &gormSections{db: db},
		Services: &gormCollection[models.ServiceItem]{db: db},
		Gallery:  &gormCollection[models.GalleryImage]{db: db, groupColumn: "category"},
		Events:   &gormEvents{db: db},
	}
}

// AutoMigrate creates or updates the four tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SiteContent{},
		&models.ServiceItem{},
		&models.GalleryImage{},
		&models.AnalyticsEvent{},
	)
}

type gormSections struct {
	db *gorm.DB
}

func (s *gormSections) Get(ctx context.Context, section string) (*models.SiteContent, error) {
	var content models.SiteContent
	if err := s.db.WithContext(ctx).Where("section = ?", section).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (s *gormSections) Upsert(ctx context.Context, content *models.SiteContent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SiteContent
		err := tx.Where("section = ?", content.Section).First(&existing).Error
		if err == nil {
			content.ID, content.CreatedAt = existing.ID, existing.CreatedAt
			content.UpdatedAt = advance(existing.UpdatedAt, content.UpdatedAt)
			return tx.Model(&existing).UpdateColumns(map[string]interface{}{
				"content":    content.Content,
				"updated_at": content.UpdatedAt,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// A concurrent first save of the same section turns this insert into
		// an update, leaving content.ID unused; reload what was stored.
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).Create(content).Error
		if err != nil {
			return err
		}
		var stored models.SiteContent
		if err := tx.Where("section = ?", content.Section).First(&stored).Error; err != nil {
			return err
		}
		content.ID, content.CreatedAt, content.UpdatedAt = stored.ID, stored.CreatedAt, stored.UpdatedAt
		return nil
	})
}

type gormCollection[T any] struct {
	db *gorm.DB
	// groupColumn backs ListFilter.Group; empty for collections without groups.
	groupColumn string
}

func (c *gormCollection[T]) List(ctx context.Context, filter ListFilter) ([]T, error) {
	q := c.db.WithContext(ctx).Model(new(T))
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Group != "" && c.groupColumn != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Name: c.groupColumn}, Value: filter.Group})
	}

	var items []T
	if err := q.Order("order_index ASC").Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (c *gormCollection[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (c *gormCollection[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

func (c *gormCollection[T]) Create(ctx context.Context, item *T) error {
	return c.db.WithContext(ctx).Create(item).Error
}

// Save rewrites every column of an existing row. Unlike gorm's Save it never
// inserts, so an update racing a delete reports ErrNotFound.
func (c *gormCollection[T]) Save(ctx context.Context, item *T) error {
	result := c.db.WithContext(ctx).Model(item).Select("*").Omit("created_at").Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *gormCollection[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetOrder issues a single UPDATE ... SET order_index = CASE id WHEN ... END.
// The parameters stay untyped: Postgres infers uuid and integer from id and
// the ELSE branch.
func (c *gormCollection[T]) SetOrder(ctx context.Context, positions []Position, at time.Time) error {
	if len(positions) == 0 {
		return nil
	}

	var expr strings.Builder
	args := make([]interface{}, 0, len(positions)*2)
	ids := make([]uuid.UUID, 0, len(positions))
	expr.WriteString("CASE id")
	for _, p := range positions {
		expr.WriteString(" WHEN ? THEN ?")
		args = append(args, p.ID, p.OrderIndex)
		ids = append(ids, p.ID)
	}
	expr.WriteString(" ELSE order_index END")

	return c.db.WithContext(ctx).Model(new(T)).
		Where("id IN ?", ids).
		UpdateColumns(map[string]interface{}{
			"order_index": gorm.Expr(expr.String(), args...),
			"updated_at":  at,
		}).Error
}

type gormEvents struct {
	db *gorm.DB
}

func (e *gormEvents) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	return e.db.WithContext(ctx).Create(event).Error
}

func (e *gormEvents) Between(ctx context.Context, start, end time.Time) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := e.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
