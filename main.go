package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glamstudio-backend/config"
	"glamstudio-backend/routes"
	"glamstudio-backend/services"
	"glamstudio-backend/store"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// glamstudio-backend hash-password <password> prints a value for ADMIN_PASSWORD_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	logger := newLogger(cfg)

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using an ephemeral secret; sessions end on restart")
		cfg.JWTSecret = utils.GenerateJWTSecret()
	}

	cache := services.NewPageCache(logger)
	publishers := services.MultiPublisher{cache}
	var webhook *services.AsyncPublisher
	if cfg.RevalidateWebhookURL != "" {
		webhook = services.NewAsyncPublisher(
			services.NewWebhookPublisher(cfg.RevalidateWebhookURL, cfg.WebhookTimeout, logger),
			cfg.WebhookTimeout, logger)
		publishers = append(publishers, webhook)
	}

	content := services.NewContentService(st, publishers, logger)
	recorder := services.NewAnalyticsRecorder(st.Events, cfg.AnalyticsQueueSize, logger)
	analytics := services.NewAnalyticsService(st.Events, cfg.Location, logger)

	var notifier services.Notifier
	if cfg.TwilioEnabled() {
		notifier = services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
	}
	booking := services.NewBookingService(content, recorder, notifier, logger)

	scheduler, err := services.NewScheduler(cfg.RevalidateSchedule, publishers, logger)
	if err != nil {
		logger.Error("scheduler", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	r := routes.SetupRouter(routes.Dependencies{
		Content:   content,
		Cache:     cache,
		Publisher: publishers,
		Recorder:  recorder,
		Analytics: analytics,
		Booking:   booking,
		Auth: utils.AuthConfig{
			Secret:       cfg.JWTSecret,
			AdminEmail:   cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
			TTL:          cfg.JWTExpiry,
			SecureCookie: cfg.IsRelease(),
		},
		CorsOrigins: cfg.CorsOrigins,
		Logger:      logger,
	})
	if !cfg.IsRelease() {
		printRoutes(r)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := scheduler.Stop(ctx); err != nil {
		logger.Warn("scheduler did not stop in time", "error", err)
	}
	if err := recorder.Close(ctx); err != nil {
		logger.Warn("analytics queue not drained", "error", err)
	}
	booking.Wait()
	if webhook != nil {
		webhook.Wait()
	}
	logger.Info("server exited")
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.IsRelease() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func openStore(cfg config.Config, logger *slog.Logger) (*store.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("using in-memory store, content is lost on restart")
		return store.NewMemory(), nil
	}

	db, err := config.ConnectDB(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	if err := store.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store.NewGorm(db), nil
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
