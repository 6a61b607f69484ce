package api

import (
	"net/http"

	"calsync-backend/internal/auth/delivery"
	authUsecase "calsync-backend/internal/auth/usecase"
	calDelivery "calsync-backend/internal/calendar/delivery"
	calUsecase "calsync-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, calendarUc calUsecase.CalendarUsecase) {
	authHandler := delivery.NewAuthHandler(authUc)
	eventHandler := calDelivery.NewEventHandler(calendarUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/google", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
			auth.GET("/status", delivery.AuthMiddleware(authUc), authHandler.Status)
			auth.POST("/revoke", delivery.AuthMiddleware(authUc), authHandler.RevokeAccess)
		}

		// User profile routes (protected)
		users := api.Group("/users")
		users.Use(delivery.AuthMiddleware(authUc))
		{
			users.GET("/profile", authHandler.GetProfile)
			users.PUT("/profile", authHandler.UpdateProfile)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(delivery.AuthMiddleware(authUc))
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		// Calendar sync routes (protected)
		cal := api.Group("/calendar")
		cal.Use(delivery.AuthMiddleware(authUc))
		{
			cal.POST("/sync", eventHandler.SyncEvents)
			cal.GET("/google", eventHandler.GoogleEvents)
		}
	}
}
