package main

import (
	"log"

	api "calsync-backend/cmd/api"
	authdomain "calsync-backend/internal/auth/domain"
	authRepo "calsync-backend/internal/auth/repository"
	authUsecase "calsync-backend/internal/auth/usecase"
	caldomain "calsync-backend/internal/calendar/domain"
	calRepo "calsync-backend/internal/calendar/repository"
	calUsecase "calsync-backend/internal/calendar/usecase"
	"calsync-backend/pkg/config"
	"calsync-backend/pkg/database"
	"calsync-backend/pkg/gcal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.UserProfile{}, &authdomain.GoogleToken{}, &authdomain.RefreshToken{}, &caldomain.Event{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	profileRepo := authRepo.NewProfileRepository(db)
	googleTokenRepo := authRepo.NewGoogleTokenRepository(db)
	eventRepo := calRepo.NewEventRepository(db)

	// Initialize Google Calendar gateway
	googleService := gcal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Printf("[WARN] GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not configured, google sign-in will fail")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, profileRepo, googleTokenRepo, googleService, cfg)
	calendarUsecaseInstance := calUsecase.NewCalendarUsecase(eventRepo, authUsecaseInstance, googleService)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, calendarUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
