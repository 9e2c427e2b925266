package config

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GIN_MODE", "")
	t.Setenv("CORS_ORIGINS", "https://nessa.example, http://localhost:3000 ,")
	t.Setenv("JWT_EXPIRY_HOURS", "abc")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"https://nessa.example", "http://localhost:3000"}, cfg.CorsOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "@every 1h", cfg.RevalidateSchedule)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.TwilioEnabled())
}

func TestLoad_Rejections(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mysql")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("release without secret", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("GIN_MODE", "release")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestPerformanceLogger_LogsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(PerformanceLogger(logger))
	r.GET("/api/services", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Contains(t, buf.String(), "path=/api/services")
	assert.Contains(t, buf.String(), "status=204")
}
