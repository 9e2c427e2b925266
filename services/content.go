package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/store"

	"gorm.io/datatypes"
)

var sectionName = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// ContentService mediates every read and write of site content. It never
// caches: each call goes to the store.
type ContentService struct {
	sections  store.Sections
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	Services *CollectionService[models.ServiceItem, *models.ServiceItem]
	Gallery  *CollectionService[models.GalleryImage, *models.GalleryImage]
}

func NewContentService(st *store.Store, publisher Publisher, logger *slog.Logger) *ContentService {
	return &ContentService{
		sections:  st.Sections,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		Services: NewCollectionService[models.ServiceItem](
			models.CollectionServices, st.Services, models.DefaultServices, publisher, logger),
		Gallery: NewCollectionService[models.GalleryImage](
			models.CollectionGallery, st.Gallery, models.DefaultGalleryImages, publisher, logger),
	}
}

// GetSection returns the stored document for name or, when the row is
// missing, unreadable or undecodable, the built-in default.
func (s *ContentService) GetSection(ctx context.Context, name string) models.SectionDocument {
	doc, _ := s.LoadSection(ctx, name)
	return doc
}

// LoadSection is GetSection that also reports whether the store could not be
// read. A missing row is not degraded: the default is the section's content
// until the first save.
func (s *ContentService) LoadSection(ctx context.Context, name string) (doc models.SectionDocument, degraded bool) {
	row, err := s.sections.Get(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DefaultSection(name), false
		}
		s.logger.Warn("section read failed, serving default", "section", name, "error", err)
		fallbackReads.WithLabelValues("section").Inc()
		return models.DefaultSection(name), true
	}

	doc, err = models.DecodeSection(name, row.Content)
	if err != nil {
		s.logger.Warn("stored section is not decodable, serving default", "section", name, "error", err)
		return models.DefaultSection(name), false
	}
	return doc, false
}

// Booking is GetSection("booking") with the concrete type.
func (s *ContentService) Booking(ctx context.Context) models.BookingContent {
	if doc, ok := s.GetSection(ctx, models.SectionBooking).(models.BookingContent); ok {
		return doc
	}
	return models.DefaultSection(models.SectionBooking).(models.BookingContent)
}

// PutSection replaces the whole document for name.
func (s *ContentService) PutSection(ctx context.Context, name string, raw []byte) (*models.SiteContent, error) {
	if !sectionName.MatchString(name) {
		return nil, invalid("section name must be lowercase letters, digits, '-' or '_'")
	}
	doc, err := models.DecodeSection(name, raw)
	if err != nil {
		return nil, invalid("content is not a valid document: " + err.Error())
	}
	if err := models.ValidateSection(doc); err != nil {
		return nil, validationFrom("content failed validation", err)
	}
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, invalid("content is not serializable: " + err.Error())
	}

	row := &models.SiteContent{
		Section:   name,
		Content:   datatypes.JSON(normalized),
		UpdatedAt: s.now().UTC(),
	}
	err = s.sections.Upsert(ctx, row)
	contentWrites.WithLabelValues("site_content", "put", outcome(err)).Inc()
	if err != nil {
		return nil, &PersistenceError{Op: "save section " + name, Err: err}
	}

	s.logger.Info("section saved", "section", name)
	s.publish(ctx)
	return row, nil
}

func (s *ContentService) publish(ctx context.Context) {
	publish(ctx, s.publisher, s.logger)
}

func publish(ctx context.Context, publisher Publisher, logger *slog.Logger) {
	if publisher == nil {
		return
	}
	res := publisher.Invalidate(context.WithoutCancel(ctx), RootPath)
	if !res.Invalidated {
		logger.Warn("publication not confirmed", "path", res.Path)
	}
}
