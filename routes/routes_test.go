package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/services"
	"glamstudio-backend/store"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =============================================================================
// Harness
// =============================================================================

const adminEmail = "admin@nessaglamstudio.com"

// The hash is computed once; bcrypt at cost 14 is slow.
var adminHash = func() string {
	hash, err := utils.HashPassword("correct horse")
	if err != nil {
		panic(err)
	}
	return hash
}()

type testServer struct {
	router   *gin.Engine
	store    *store.Store
	recorder *services.AnalyticsRecorder
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	cache := services.NewPageCache(logger)
	publisher := services.MultiPublisher{cache}
	content := services.NewContentService(st, publisher, logger)
	recorder := services.NewAnalyticsRecorder(st.Events, 16, logger)
	t.Cleanup(func() { _ = recorder.Close(context.Background()) })

	auth := utils.AuthConfig{Secret: "test-secret", AdminEmail: adminEmail, PasswordHash: adminHash, TTL: time.Hour}
	router := SetupRouter(Dependencies{
		Content:   content,
		Cache:     cache,
		Publisher: publisher,
		Recorder:  recorder,
		Analytics: services.NewAnalyticsService(st.Events, time.UTC, logger),
		Booking:   services.NewBookingService(content, recorder, nil, logger),
		Auth:      auth,
		Logger:    logger,
	})

	token, _, err := utils.GenerateToken(auth, adminEmail, utils.RoleAdmin)
	require.NoError(t, err)
	return &testServer{router: router, store: st, recorder: recorder, token: token}
}

func (s *testServer) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// =============================================================================
// Auth
// =============================================================================

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/login", gin.H{"email": "Admin@NessaGlamStudio.com", "password": "correct horse"}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), utils.SessionCookie+"=")

	body := decode[struct {
		Token string `json:"token"`
	}](t, w)
	s.token = body.Token
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/auth/me", nil, true).Code)

	w = s.do(http.MethodPost, "/auth/login", gin.H{"email": adminEmail, "password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/admin/services", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), utils.LoginRedirect)

	w = s.do(http.MethodPost, "/api/revalidate", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/services", nil, false).Code)
}

// =============================================================================
// Content
// =============================================================================

func TestSectionEditIsVisibleOnPublicSite(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/content/hero", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nessa Glam Studio")

	hero := gin.H{"title": "New Title", "subtitle": "s", "description": "d", "ctaText": "Book", "ctaSecondaryText": "View"}
	w = s.do(http.MethodPut, "/api/admin/content/hero", hero, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/content/hero", nil, false)
	assert.Contains(t, w.Body.String(), "New Title")

	site := decode[map[string]json.RawMessage](t, s.do(http.MethodGet, "/api/site", nil, false))
	assert.Contains(t, string(site["hero"]), "New Title")
}

func TestSectionValidationErrorsListFields(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/admin/content/booking", gin.H{"method": "fax", "phone": "1", "email": "x", "whatsappNumber": "1"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w)
	assert.Contains(t, body.Fields, "method")
	assert.Contains(t, body.Fields, "email")
}

func TestServiceLifecycle(t *testing.T) {
	s := newTestServer(t)
	create := func(title string) models.ServiceItem {
		w := s.do(http.MethodPost, "/api/admin/services", gin.H{
			"title": title, "description": "d", "features": []string{"a"}, "price": "From R800", "duration": "2 hours", "icon": "Crown",
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[models.ServiceItem](t, w)
	}

	bridal, glam := create("Bridal"), create("Glam")
	assert.Equal(t, 1, bridal.OrderIndex)
	assert.Equal(t, 2, glam.OrderIndex)

	public := decode[[]models.ServiceItem](t, s.do(http.MethodGet, "/api/services", nil, false))
	require.Len(t, public, 2)

	w := s.do(http.MethodPatch, "/api/admin/services/"+bridal.ID.String()+"/active", gin.H{"is_active": false}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	public = decode[[]models.ServiceItem](t, s.do(http.MethodGet, "/api/services", nil, false))
	require.Len(t, public, 1, "mutation must invalidate the cached page")
	assert.Equal(t, "Glam", public[0].Title)

	w = s.do(http.MethodPut, "/api/admin/services/"+glam.ID.String(), gin.H{"price": "From R950"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "From R950", decode[models.ServiceItem](t, w).Price)

	w = s.do(http.MethodPut, "/api/admin/services/order", gin.H{"ids": []string{glam.ID.String(), bridal.ID.String()}}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ordered := decode[[]models.ServiceItem](t, w)
	assert.Equal(t, "Glam", ordered[0].Title)

	w = s.do(http.MethodDelete, "/api/admin/services/"+glam.ID.String(), nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, "/api/admin/services/"+glam.ID.String(), nil, true)
	assert.Equal(t, http.StatusOK, w.Code, "delete is idempotent")

	w = s.do(http.MethodPut, "/api/admin/services/"+glam.ID.String(), gin.H{"price": "x"}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/admin/services/not-a-uuid", gin.H{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryCategoryViews(t *testing.T) {
	s := newTestServer(t)
	create := func(title, category string) models.GalleryImage {
		w := s.do(http.MethodPost, "/api/admin/gallery", gin.H{
			"url": "https://images.example.com/" + title + ".jpg", "alt": title, "category": category, "title": title,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[models.GalleryImage](t, w)
	}

	b1 := create("b1", "Bridal Makeup")
	create("g1", "Glam Makeup")
	b2 := create("b2", "Bridal Makeup")

	w := s.do(http.MethodPost, "/api/admin/gallery", gin.H{"url": "ftp://x", "category": "Cats"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/admin/gallery/order?category=Bridal%20Makeup", gin.H{"ids": []string{b2.ID.String(), b1.ID.String()}}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	public := decode[[]models.GalleryImage](t, s.do(http.MethodGet, "/api/gallery", nil, false))
	require.Len(t, public, 3)
	assert.Equal(t, []string{"b2", "g1", "b1"}, []string{public[0].Title, public[1].Title, public[2].Title})

	bridal := decode[[]models.GalleryImage](t, s.do(http.MethodGet, "/api/gallery?category=Bridal%20Makeup", nil, false))
	assert.Len(t, bridal, 2)
}

// =============================================================================
// Analytics, booking and publication
// =============================================================================

func TestTrackAndSummarize(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/track", gin.H{"event_type": "page_view", "event_data": gin.H{"page": "home"}}, false)
	require.Equal(t, http.StatusAccepted, w.Code)
	w = s.do(http.MethodPost, "/api/track", gin.H{"event_type": "whatsapp_click", "event_data": gin.H{"service": "Bridal"}}, false)
	require.Equal(t, http.StatusAccepted, w.Code)
	w = s.do(http.MethodPost, "/api/track", gin.H{"event_type": "Bad Type"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.Eventually(t, func() bool {
		events, _ := s.store.Events.Between(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
		return len(events) == 2
	}, 2*time.Second, 10*time.Millisecond)

	overview := decode[map[string]any](t, s.do(http.MethodGet, "/api/admin/dashboard", nil, true))
	assert.EqualValues(t, 1, overview["pageViews"])
	assert.EqualValues(t, 0, overview["totalServices"])

	summary := decode[services.AnalyticsSummary](t, s.do(http.MethodGet, "/api/admin/analytics?range=30d", nil, true))
	assert.Equal(t, "30d", summary.Range)
	assert.Equal(t, 1, summary.TotalPageViews)
	assert.Equal(t, 1, summary.WhatsAppClicks)
	assert.Len(t, summary.DailyStats, 30)
	assert.False(t, summary.Fallback)
}

func TestBookingEndpoints(t *testing.T) {
	s := newTestServer(t)

	links := decode[services.BookingLinks](t, s.do(http.MethodGet, "/api/booking/link?service=Bridal%20Packages", nil, false))
	assert.Contains(t, links.Primary, "https://wa.me/27810625473?text=")

	w := s.do(http.MethodPost, "/api/booking/request", gin.H{
		"name": "Thandi", "email": "thandi@example.com", "phone": "+27 81 062 5473",
		"service": "Bridal Makeup", "date": "2025-07-01", "time": "10:00",
	}, false)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/booking/request", gin.H{"name": "Thandi"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevalidate(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/revalidate?path=/gallery/", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[services.Invalidation](t, w)
	assert.True(t, result.Invalidated)
	assert.Equal(t, "/gallery", result.Path)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", nil, false).Code)
	w := s.do(http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}
