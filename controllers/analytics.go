// controllers/analytics.go
package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type TrackInput struct {
	EventType string         `json:"event_type" binding:"required"`
	EventData map[string]any `json:"event_data"`
	URL       string         `json:"url"`
}

type AnalyticsController struct {
	recorder  *services.AnalyticsRecorder
	analytics *services.AnalyticsService
	logger    *slog.Logger
}

func NewAnalyticsController(recorder *services.AnalyticsRecorder, analytics *services.AnalyticsService, logger *slog.Logger) *AnalyticsController {
	return &AnalyticsController{recorder: recorder, analytics: analytics, logger: logger}
}

// envelope collects the tracking fields the browser sends implicitly.
func envelope(c *gin.Context, url string) models.EventEnvelope {
	if url == "" {
		url = c.GetHeader("Referer")
	}
	return models.EventEnvelope{URL: url, UserAgent: c.Request.UserAgent()}
}

// Track queues a page view or click. Accepted events may still be dropped
// later; the site never waits on analytics.
func (ac *AnalyticsController) Track(c *gin.Context) {
	var input TrackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event, err := services.NewEvent(input.EventType, input.EventData, envelope(c, input.URL), time.Now())
	if err != nil {
		respondServiceError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"accepted": ac.recorder.Submit(event)})
}

// GetAnalytics summarizes ?range=7d|30d|90d
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, ac.analytics.Summary(c.Request.Context(), c.Query("range")))
}
