package controllers

import (
	"log/slog"
	"net/http"

	"glamstudio-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalServices       int                      `json:"totalServices"`
	ActiveServices      int                      `json:"activeServices"`
	GalleryImages       int                      `json:"galleryImages"`
	ActiveGalleryImages int                      `json:"activeGalleryImages"`
	WhatsAppClicks      int                      `json:"whatsappClicks"`
	PageViews           int                      `json:"pageViews"`
	PopularServices     []services.ServiceClicks `json:"popularServices"`
	RecentActivity      []services.ActivityEntry `json:"recentActivity"`
	AnalyticsFallback   bool                     `json:"analyticsFallback"`
}

type DashboardController struct {
	content   *services.ContentService
	analytics *services.AnalyticsService
	logger    *slog.Logger
}

func NewDashboardController(content *services.ContentService, analytics *services.AnalyticsService, logger *slog.Logger) *DashboardController {
	return &DashboardController{content: content, analytics: analytics, logger: logger}
}

// GetDashboardOverview returns the admin landing page numbers: collection
// sizes and the last 7 days of traffic.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()

	serviceItems, err := dc.content.Services.ListAll(ctx, "")
	if err != nil {
		respondServiceError(c, dc.logger, err)
		return
	}
	images, err := dc.content.Gallery.ListAll(ctx, "")
	if err != nil {
		respondServiceError(c, dc.logger, err)
		return
	}

	overview := DashboardOverview{
		TotalServices: len(serviceItems),
		GalleryImages: len(images),
	}
	for _, item := range serviceItems {
		if item.IsActive {
			overview.ActiveServices++
		}
	}
	for _, img := range images {
		if img.IsActive {
			overview.ActiveGalleryImages++
		}
	}

	summary := dc.analytics.Summary(ctx, "7d")
	overview.WhatsAppClicks = summary.WhatsAppClicks
	overview.PageViews = summary.TotalPageViews
	overview.PopularServices = summary.PopularServices
	overview.RecentActivity = summary.RecentActivity
	if len(overview.RecentActivity) > 5 {
		overview.RecentActivity = overview.RecentActivity[:5]
	}
	overview.AnalyticsFallback = summary.Fallback

	c.JSON(http.StatusOK, overview)
}
