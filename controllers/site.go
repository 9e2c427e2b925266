// controllers/site.go
package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"glamstudio-backend/models"
	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

// Public pages served from the page cache.
const (
	PageSite     = "/"
	PageServices = "/services"
	PageGallery  = "/gallery"
	pageContent  = "/content/"
)

// SitePayload is everything the public home page renders.
type SitePayload struct {
	Hero     models.SectionDocument `json:"hero"`
	About    models.SectionDocument `json:"about"`
	Booking  models.SectionDocument `json:"booking"`
	Services []models.ServiceItem   `json:"services"`
	Gallery  []models.GalleryImage  `json:"gallery"`
}

type SiteController struct {
	cache   *services.PageCache
	content *services.ContentService
	logger  *slog.Logger
}

// NewSiteController registers the public page renderers on cache.
func NewSiteController(cache *services.PageCache, content *services.ContentService, logger *slog.Logger) *SiteController {
	cache.Register(PageSite, func(ctx context.Context) (any, error) {
		var page SitePayload
		var degraded [5]bool
		page.Hero, degraded[0] = content.LoadSection(ctx, models.SectionHero)
		page.About, degraded[1] = content.LoadSection(ctx, models.SectionAbout)
		page.Booking, degraded[2] = content.LoadSection(ctx, models.SectionBooking)
		page.Services, degraded[3] = content.Services.LoadActive(ctx)
		page.Gallery, degraded[4] = content.Gallery.LoadActive(ctx)
		return services.PageResult(page, degraded[:]...)
	})
	cache.Register(PageServices, func(ctx context.Context) (any, error) {
		return services.PageResult(content.Services.LoadActive(ctx))
	})
	cache.Register(PageGallery, func(ctx context.Context) (any, error) {
		return services.PageResult(content.Gallery.LoadActive(ctx))
	})
	for _, section := range []string{models.SectionHero, models.SectionAbout, models.SectionBooking} {
		section := section
		cache.Register(pageContent+section, func(ctx context.Context) (any, error) {
			return services.PageResult(content.LoadSection(ctx, section))
		})
	}
	return &SiteController{cache: cache, content: content, logger: logger}
}

func (sc *SiteController) serve(c *gin.Context, page string) (any, bool) {
	payload, err := sc.cache.Get(c.Request.Context(), page)
	if err != nil {
		sc.logger.Error("page render failed", "page", page, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load page")
		return nil, false
	}
	return payload, true
}

func (sc *SiteController) GetSite(c *gin.Context) {
	if payload, ok := sc.serve(c, PageSite); ok {
		c.JSON(http.StatusOK, payload)
	}
}

func (sc *SiteController) GetServices(c *gin.Context) {
	if payload, ok := sc.serve(c, PageServices); ok {
		c.JSON(http.StatusOK, payload)
	}
}

// GetGallery serves the active gallery; ?category= filters the cached list.
func (sc *SiteController) GetGallery(c *gin.Context) {
	payload, ok := sc.serve(c, PageGallery)
	if !ok {
		return
	}
	category := strings.TrimSpace(c.Query("category"))
	images, _ := payload.([]models.GalleryImage)
	if category == "" || category == "all" {
		c.JSON(http.StatusOK, images)
		return
	}

	filtered := make([]models.GalleryImage, 0, len(images))
	for _, img := range images {
		if img.Category == category {
			filtered = append(filtered, img)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

// GetSection serves one content section. Sections without a cached page are
// read directly.
func (sc *SiteController) GetSection(c *gin.Context) {
	section := c.Param("section")
	payload, err := sc.cache.Get(c.Request.Context(), pageContent+section)
	if errors.Is(err, services.ErrUnknownPage) {
		payload, err = sc.content.GetSection(c.Request.Context(), section), nil
	}
	if err != nil {
		sc.logger.Error("section render failed", "section", section, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load section")
		return
	}
	c.JSON(http.StatusOK, payload)
}
