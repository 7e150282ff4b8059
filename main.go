package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/repository"
	"salonhub-backend/repository/memory"
	"salonhub-backend/repository/postgres"
	"salonhub-backend/routes"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(settings.LogLevel)
	if settings.GeneratedJWTSecret {
		log.Warn("JWT_SECRET not set, using a generated secret; tokens are invalidated on restart")
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := settings.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid TIMEZONE")
	}
	clock := services.SystemClock(loc)

	store := openStore(settings, log)
	metrics := config.NewMetrics()

	users := services.NewUserService(store, log)
	catalog := services.NewCatalogService(store, log)
	packages := services.NewPackageService(store, store, clock, log)
	appointments := services.NewAppointmentService(store, store, clock, log, metrics)
	resolver := services.NewServiceRefResolver(store, log)
	feedback := services.NewFeedbackService(store, resolver, clock, log, metrics)
	inventory := services.NewInventoryService(store, settings.LowStockThreshold, clock, log, metrics)
	overview := services.NewOverviewService(appointments, feedback, packages, inventory, clock)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := users.EnsureAdmin(ctx, settings.AdminEmail, settings.AdminPassword); err != nil {
		log.WithError(err).Fatal("failed to seed admin account")
	}

	var sender services.MessageSender
	if settings.TwilioConfigured() {
		sender = services.NewTwilioSender(settings.TwilioAccountSID, settings.TwilioAuthToken, settings.TwilioPhoneNumber)
	}
	digest := services.NewStockAlertService(inventory, sender, settings.StockAlertPhone, log)
	if err := digest.StartScheduler(settings.StockAlertCron); err != nil {
		log.WithError(err).Fatal("failed to start low-stock digest")
	}
	defer digest.Stop()

	r := routes.SetupRouter(routes.Dependencies{
		Log:            log,
		Metrics:        metrics,
		Limiter:        newLimiter(settings, log),
		AllowedOrigins: settings.AllowedOrigins(),
		JWTSecret:      settings.JWTSecret,
		JWTExpiry:      settings.JWTExpiry(),
		CookieSecure:   settings.CookieSecure,
		UploadDir:      settings.UploadDir,
		Users:          users,
		Catalog:        catalog,
		Packages:       packages,
		Appointments:   appointments,
		Feedback:       feedback,
		Inventory:      inventory,
		Overview:       overview,
	})
	printRoutes(r, log)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server shutdown error")
	}
	log.Info("http server stopped")
}

func openStore(settings *config.Settings, log *logrus.Logger) repository.Store {
	if settings.DBDriver == "memory" {
		log.Warn("using in-memory store; data is lost on restart")
		return memory.New()
	}
	db, err := config.ConnectDB(settings, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	store := postgres.New(db)
	if err := store.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	return store
}

// newLimiter shares the auth rate limit through Redis when REDIS_URL is set.
func newLimiter(settings *config.Settings, log *logrus.Logger) utils.Limiter {
	if settings.RedisURL == "" {
		return utils.NewMemoryLimiter(settings.RateLimitPerMinute)
	}
	opts, err := redis.ParseURL(settings.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("invalid REDIS_URL")
	}
	return utils.NewRedisLimiter(redis.NewClient(opts), settings.RateLimitPerMinute, time.Minute, "salon:auth")
}

func printRoutes(r *gin.Engine, log *logrus.Logger) {
	for _, route := range r.Routes() {
		log.WithFields(logrus.Fields{"method": route.Method, "path": route.Path}).Debug("route registered")
	}
}
