package routes

import (
	"log/slog"
	"net/http"
	"time"

	"glamstudio-backend/config"
	"glamstudio-backend/controllers"
	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the wired services the router hands to its controllers.
type Dependencies struct {
	Content     *services.ContentService
	Cache       *services.PageCache
	Publisher   services.Publisher
	Recorder    *services.AnalyticsRecorder
	Analytics   *services.AnalyticsService
	Booking     *services.BookingService
	Auth        utils.AuthConfig
	CorsOrigins []string
	Logger      *slog.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	allowed := make(map[string]bool, len(deps.CorsOrigins))
	for _, origin := range deps.CorsOrigins {
		allowed[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return allowed[origin]
		},
		MaxAge: 12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger(deps.Logger))

	site := controllers.NewSiteController(deps.Cache, deps.Content, deps.Logger)
	content := controllers.NewContentController(deps.Content, deps.Logger)
	serviceController := controllers.NewServiceController(deps.Content, deps.Logger)
	gallery := controllers.NewGalleryController(deps.Content, deps.Logger)
	analytics := controllers.NewAnalyticsController(deps.Recorder, deps.Analytics, deps.Logger)
	booking := controllers.NewBookingController(deps.Booking, deps.Logger)
	dashboard := controllers.NewDashboardController(deps.Content, deps.Analytics, deps.Logger)
	revalidate := controllers.NewRevalidateController(deps.Publisher)
	authController := controllers.NewAuthController(deps.Auth, deps.Logger)
	adminRequired := utils.AdminRequired(deps.Auth)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", adminRequired, authController.Me)
	}

	api := r.Group("/api")
	{
		// Public site
		api.GET("/site", site.GetSite)
		api.GET("/content/:section", site.GetSection)
		api.GET("/services", site.GetServices)
		api.GET("/gallery", site.GetGallery)
		api.POST("/track", analytics.Track)
		api.GET("/booking/link", booking.GetLink)
		api.POST("/booking/request", booking.CreateRequest)

		api.POST("/revalidate", adminRequired, revalidate.Revalidate)
	}

	admin := api.Group("/admin", adminRequired)
	{
		admin.GET("/content/:section", content.GetSection)
		admin.PUT("/content/:section", content.UpdateSection)

		// Service routes
		servicesGroup := admin.Group("/services")
		{
			servicesGroup.GET("", serviceController.GetServices)
			servicesGroup.POST("", serviceController.CreateService)
			servicesGroup.PUT("/order", serviceController.ReorderServices)
			servicesGroup.PUT("/:id", serviceController.UpdateService)
			servicesGroup.PATCH("/:id/active", serviceController.SetServiceActive)
			servicesGroup.DELETE("/:id", serviceController.DeleteService)
		}

		// Gallery routes
		galleryGroup := admin.Group("/gallery")
		{
			galleryGroup.GET("", gallery.GetImages)
			galleryGroup.POST("", gallery.CreateImage)
			galleryGroup.PUT("/order", gallery.ReorderImages)
			galleryGroup.PUT("/:id", gallery.UpdateImage)
			galleryGroup.PATCH("/:id/active", gallery.SetImageActive)
			galleryGroup.DELETE("/:id", gallery.DeleteImage)
		}

		admin.GET("/dashboard", dashboard.GetDashboardOverview)
		admin.GET("/analytics", analytics.GetAnalytics)
	}

	return r
}
