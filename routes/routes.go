package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agenda-api/controllers"
	"agenda-api/middleware"
	"agenda-api/repositories"
	"agenda-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, jwtSecret string, emailService *services.EmailService) {
	friendRepo := repositories.NewFriendRepository(db)

	// Controllers
	authController := controllers.NewAuthController(db, jwtSecret, emailService)
	notificationController := controllers.NewNotificationController(db)
	userController := controllers.NewUserController(db, friendRepo)
	friendController := controllers.NewFriendController(db, friendRepo, notificationController)
	eventController := controllers.NewEventController(db, friendRepo, notificationController)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authProtected := protected.Group("/auth")
		{
			authProtected.GET("/profile", authController.GetProfile)
			authProtected.PUT("/profile", authController.UpdateProfile)
			authProtected.POST("/change-password", authController.ChangePassword)
			authProtected.GET("/verify", authController.VerifyToken)
		}

		// Event routes
		events := protected.Group("/events")
		{
			events.GET("", eventController.GetEvents)
			events.POST("", eventController.CreateEvent)
			events.GET("/calendar", eventController.GetMonthView)
			events.GET("/export.ics", eventController.ExportICS)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.GET("/:id/comments", eventController.GetComments)
			events.POST("/:id/comments", eventController.AddComment)
			events.POST("/:id/share", eventController.ShareEvent)
			events.PUT("/:id/respond", eventController.RespondToInvitation)
		}

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/search", userController.SearchUsers)
			users.GET("/:id", userController.GetUser)
			users.POST("/:id/friend-request", friendController.SendFriendRequest)
		}

		// Friend routes
		friends := protected.Group("/friends")
		{
			friends.GET("", friendController.GetFriends)
			friends.DELETE("/:id", friendController.RemoveFriend)
			friends.GET("/requests", friendController.GetFriendRequests)
			friends.POST("/requests/:id/respond", friendController.RespondToFriendRequest)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}
	}

	// Catch-all for unmatched paths
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
