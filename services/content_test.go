package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Sections
// =============================================================================

func TestPutSection_ReadBackReturnsSavedDocument(t *testing.T) {
	svc, pub := newTestContent(store.NewMemory())
	ctx := context.Background()

	raw := []byte(`{"title":"Nessa","subtitle":"Glam","description":"Hair and makeup","ctaText":"Book","ctaSecondaryText":"View"}`)
	row, err := svc.PutSection(ctx, models.SectionHero, raw)
	require.NoError(t, err)
	assert.Equal(t, models.SectionHero, row.Section)

	doc := svc.GetSection(ctx, models.SectionHero)
	hero, ok := doc.(models.HeroContent)
	require.True(t, ok)
	assert.Equal(t, "Nessa", hero.Title)
	assert.Equal(t, "View", hero.CTASecondaryText)
	assert.Equal(t, 1, pub.Calls())
}

func TestPutSection_InvalidDocumentIsRejectedWithoutWrite(t *testing.T) {
	svc, pub := newTestContent(store.NewMemory())
	ctx := context.Background()

	_, err := svc.PutSection(ctx, models.SectionHero, []byte(`{"title":"","subtitle":"x","description":"x","ctaText":"x","ctaSecondaryText":"x"}`))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, 0, pub.Calls())

	// Nothing was stored, so the default is served.
	assert.Equal(t, models.DefaultSection(models.SectionHero), svc.GetSection(ctx, models.SectionHero))
}

func TestPutSection_RejectsBadNamesAndNonObjects(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())
	ctx := context.Background()

	_, err := svc.PutSection(ctx, "Hero Section", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	_, err = svc.PutSection(ctx, "footer", []byte(`[1,2]`))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	_, err = svc.PutSection(ctx, "footer", []byte(`{"tagline":"Glam","links":["a","b"]}`))
	assert.NoError(t, err)
}

func TestPutSection_UpdatedAtStrictlyIncreases(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())
	frozen := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	ctx := context.Background()

	var last time.Time
	for i := 0; i < 3; i++ {
		row, err := svc.PutSection(ctx, "footer", []byte(`{"tagline":"v"}`))
		require.NoError(t, err)
		assert.True(t, row.UpdatedAt.After(last), "write %d did not advance updated_at", i)
		last = row.UpdatedAt
	}
}

func TestPutSection_ReplacesWholeDocument(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())
	ctx := context.Background()

	_, err := svc.PutSection(ctx, "footer", []byte(`{"tagline":"one","phone":"123"}`))
	require.NoError(t, err)
	_, err = svc.PutSection(ctx, "footer", []byte(`{"tagline":"two"}`))
	require.NoError(t, err)

	body, err := json.Marshal(svc.GetSection(ctx, "footer"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tagline":"two"}`, string(body))
}

func TestPutSection_StoreFailureIsPersistenceError(t *testing.T) {
	svc, pub := newTestContent(failingStore())

	_, err := svc.PutSection(context.Background(), "footer", []byte(`{"tagline":"v"}`))
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, 0, pub.Calls())
}

func TestGetSection_FallsBackOnStoreFailure(t *testing.T) {
	svc, _ := newTestContent(failingStore())
	ctx := context.Background()

	assert.Equal(t, models.DefaultSection(models.SectionHero), svc.GetSection(ctx, models.SectionHero))
	assert.Equal(t, models.DefaultSection(models.SectionBooking), svc.Booking(ctx))

	_, degraded := svc.LoadSection(ctx, models.SectionHero)
	assert.True(t, degraded)
}

func TestLoadSection_MissingRowIsNotDegraded(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())

	doc, degraded := svc.LoadSection(context.Background(), models.SectionAbout)
	assert.False(t, degraded)
	assert.Equal(t, models.DefaultSection(models.SectionAbout), doc)
}

func TestPublicationFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{result: false}
	svc := NewContentService(store.NewMemory(), pub, discardLogger())

	_, err := svc.PutSection(context.Background(), models.SectionAbout, []byte(`{"title":"About","description":"Us"}`))
	assert.NoError(t, err)
	assert.Equal(t, 1, pub.Calls())
}

// =============================================================================
// Collections
// =============================================================================

func TestCreate_AppendsActiveItemAtEnd(t *testing.T) {
	svc, pub := newTestContent(store.NewMemory())
	ctx := context.Background()

	first, second := newService("Bridal"), newService("Makeup")
	require.NoError(t, svc.Services.Create(ctx, first))
	require.NoError(t, svc.Services.Create(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, first.OrderIndex)
	assert.Equal(t, 2, second.OrderIndex)
	assert.True(t, second.IsActive)
	assert.Equal(t, 2, pub.Calls())
}

func TestCreate_InvalidItemIsRejected(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())
	ctx := context.Background()

	item := newService("Bridal")
	item.Icon = "Rocket"
	err := svc.Services.Create(ctx, item)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "icon")

	items, err := svc.Services.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListActive_HidesInactiveAndKeepsOrder(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())
	ctx := context.Background()

	a, b, c := newService("A"), newService("B"), newService("C")
	for _, item := range []*models.ServiceItem{a, b, c} {
		require.NoError(t, svc.Services.Create(ctx, item))
	}
	_, err := svc.Services.SetActive(ctx, b.ID, false)
	require.NoError(t, err)

	active := svc.Services.ListActive(ctx)
	require.Len(t, active, 2)
	assert.Equal(t, "A", active[0].Title)
	assert.Equal(t, "C", active[1].Title)

	all, err := svc.Services.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 2, all[1].OrderIndex, "hiding must not move the item")
}

func TestListActive_EmptyTableIsEmptyNotFallback(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())

	items, degraded := svc.Gallery.LoadActive(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.False(t, degraded)
}

func TestListActive_StoreFailureServesFallback(t *testing.T) {
	svc, _ := newTestContent(failingStore())
	ctx := context.Background()

	assert.Len(t, svc.Services.ListActive(ctx), 4)
	assert.Len(t, svc.Gallery.ListActive(ctx), 2)
	_, degraded := svc.Services.LoadActive(ctx)
	assert.True(t, degraded)

	_, err := svc.Services.ListAll(ctx, "")
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestUpdate_MergesFieldsAndKeepsPosition(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())
	ctx := context.Background()

	item := newService("Bridal")
	require.NoError(t, svc.Services.Create(ctx, item))
	require.NoError(t, svc.Services.Create(ctx, newService("Makeup")))

	updated, err := svc.Services.Update(ctx, item.ID, func(s *models.ServiceItem) {
		s.Price = "From R1200"
		s.OrderIndex = 99
	})
	require.NoError(t, err)
	assert.Equal(t, "From R1200", updated.Price)
	assert.Equal(t, "Bridal", updated.Title)
	assert.Equal(t, 1, updated.OrderIndex)

	stored, err := svc.Services.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "From R1200", stored.Price)
}

func TestUpdate_UnknownIDIsNotFound(t *testing.T) {
	svc, _ := newTestContent(store.NewMemory())

	_, err := svc.Services.Update(context.Background(), uuid.New(), func(*models.ServiceItem) {})
	var nerr *NotFoundError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))

	_, err = svc.Gallery.SetActive(context.Background(), uuid.New(), true)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestDelete_IsIdempotentAndCompacts(t *testing.T) {
	svc, pub := newTestContent(store.NewMemory())
	ctx := context.Background()

	a, b, c := newService("A"), newService("B"), newService("C")
	for _, item := range []*models.ServiceItem{a, b, c} {
		require.NoError(t, svc.Services.Create(ctx, item))
	}
	calls := pub.Calls()

	require.NoError(t, svc.Services.Delete(ctx, a.ID))
	require.NoError(t, svc.Services.Delete(ctx, a.ID))
	assert.Equal(t, calls+1, pub.Calls(), "a no-op delete does not republish")

	all, err := svc.Services.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int{1, 2}, []int{all[0].OrderIndex, all[1].OrderIndex})

	d := newService("D")
	require.NoError(t, svc.Services.Create(ctx, d))
	assert.Equal(t, 3, d.OrderIndex)
}
