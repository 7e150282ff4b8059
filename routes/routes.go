package routes

import (
	"net/http"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/controllers"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything the router needs to serve the API.
type Dependencies struct {
	Log     logrus.FieldLogger
	Metrics *config.Metrics
	Limiter utils.Limiter

	AllowedOrigins []string
	JWTSecret      string
	JWTExpiry      time.Duration
	CookieSecure   bool
	UploadDir      string

	Users        *services.UserService
	Catalog      *services.CatalogService
	Packages     *services.PackageService
	Appointments *services.AppointmentService
	Feedback     *services.FeedbackService
	Inventory    *services.InventoryService
	Overview     *services.OverviewService
}

func SetupRouter(d Dependencies) *gin.Engine {
	utils.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger(d.Log, d.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	var lookup utils.RoleLookup
	if d.Users != nil {
		lookup = d.Users.CurrentRole
	}
	authn := utils.AuthMiddleware(d.JWTSecret, lookup)
	adminOnly := utils.RequireRole(models.RoleAdmin)

	authController := &controllers.AuthController{
		Users:        d.Users,
		Secret:       d.JWTSecret,
		Expiry:       d.JWTExpiry,
		CookieSecure: d.CookieSecure,
		Log:          d.Log,
	}
	userController := &controllers.UserController{Users: d.Users, Log: d.Log}
	serviceController := &controllers.ServiceController{Catalog: d.Catalog, UploadDir: d.UploadDir, Log: d.Log}
	packageController := &controllers.PackageController{Packages: d.Packages, Log: d.Log}
	appointmentController := &controllers.AppointmentController{Appointments: d.Appointments, Log: d.Log}
	feedbackController := &controllers.FeedbackController{Feedback: d.Feedback, Log: d.Log}
	inventoryController := &controllers.InventoryController{Inventory: d.Inventory, Log: d.Log}
	dashboardController := &controllers.DashboardController{Overview: d.Overview, Log: d.Log}

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		limited := auth.Group("")
		if d.Limiter != nil {
			limited.Use(utils.RateLimit(d.Limiter, d.Log))
		}
		limited.POST("/signup", authController.Signup)
		limited.POST("/login", authController.Login)

		auth.GET("/signout", authController.Signout)
		auth.GET("/me", authn, authController.Me)
	}

	// User routes
	users := api.Group("/user", authn)
	{
		users.GET("/profile", userController.GetProfile)
		users.PUT("/profile", userController.UpdateProfile)
		users.DELETE("/profile", userController.DeleteProfile)

		users.GET("", adminOnly, userController.List)
		users.POST("", adminOnly, userController.Create)
		users.GET("/:id", adminOnly, userController.Get)
		users.PUT("/:id", adminOnly, userController.Update)
		users.DELETE("/:id", adminOnly, userController.Delete)
	}

	// Service routes
	serviceRoutes := api.Group("/Service")
	{
		serviceRoutes.GET("", serviceController.List)
		serviceRoutes.GET("/:id", serviceController.Get)
		serviceRoutes.POST("", authn, adminOnly, serviceController.Create)
		serviceRoutes.PUT("/:id", authn, adminOnly, serviceController.Update)
		serviceRoutes.DELETE("/:id", authn, adminOnly, serviceController.Delete)
	}

	// Package routes
	packages := api.Group("/Package")
	{
		packages.GET("", packageController.List)
		packages.GET("/:id", packageController.Get)
		packages.POST("", authn, adminOnly, packageController.Create)
		packages.PUT("/:id", authn, adminOnly, packageController.Update)
		packages.DELETE("/:id", authn, adminOnly, packageController.Delete)
	}

	// Appointment routes
	appointments := api.Group("/appoiment", authn)
	{
		appointments.POST("", appointmentController.Create)
		appointments.GET("", adminOnly, appointmentController.List)
		appointments.GET("/user/:userId", appointmentController.ListByUser)
		appointments.PUT("/status/:id", adminOnly, appointmentController.UpdateStatus)
		appointments.GET("/:id", appointmentController.Get)
		appointments.PUT("/:id", appointmentController.Update)
		appointments.DELETE("/:id", appointmentController.Delete)
	}

	// Feedback routes
	feedback := api.Group("/feedback")
	{
		feedback.GET("/approved", feedbackController.ListApproved)
		feedback.GET("", authn, adminOnly, feedbackController.List)
		feedback.POST("", authn, feedbackController.Create)
		feedback.GET("/user/:userId", authn, feedbackController.ListByUser)
		feedback.PUT("/status/:id", authn, adminOnly, feedbackController.SetStatus)
		feedback.GET("/:id", authn, feedbackController.Get)
		feedback.PUT("/:id", authn, feedbackController.Update)
		feedback.DELETE("/:id", authn, feedbackController.Delete)
	}

	// Inventory routes
	inventory := api.Group("/inventory", authn, adminOnly)
	{
		inventory.GET("", inventoryController.List)
		inventory.POST("", inventoryController.Create)
		inventory.GET("/search", inventoryController.Search)
		inventory.GET("/notifications", inventoryController.Notifications)
		inventory.GET("/:id", inventoryController.Get)
		inventory.PUT("/:id", inventoryController.Update)
		inventory.DELETE("/:id", inventoryController.Delete)
		inventory.POST("/:id/retrieve", inventoryController.Retrieve)
	}

	// Dashboard routes
	api.GET("/dashboard", authn, adminOnly, dashboardController.GetOverview)

	return r
}
