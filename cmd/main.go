package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ambernote/broker"
	"ambernote/config"
	"ambernote/database"
	"ambernote/middleware"
	"ambernote/routes"
	"ambernote/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// The event producer is optional: without NATS the API still serves
	// requests, it just stops announcing note changes.
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: Failed to initialize NATS producer: %v", err)
		log.Println("The application will continue, but note events will not be published")
	} else {
		defer broker.CloseProducer()
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	services.NotespaceServiceInstance = services.NewNotespaceService()
	services.MemberServiceInstance = services.NewMemberService()
	services.TagServiceInstance = services.NewTagService()
	services.NoteServiceInstance = services.NewNoteService()
	services.NoteLogServiceInstance = services.NewNoteLogService()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Login and registration are the only unauthenticated endpoints.
	routes.RegisterAuthRoutes(router, db, authService, userService)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))

	routes.RegisterUserRoutes(api, db, services.UserServiceInstance)
	routes.RegisterNotespaceRoutes(api, db, services.NotespaceServiceInstance)
	routes.RegisterMemberRoutes(api, db, services.MemberServiceInstance)
	routes.RegisterTagRoutes(api, db, services.TagServiceInstance)
	routes.RegisterNoteRoutes(api, db, services.NoteServiceInstance)
	routes.RegisterNoteLogRoutes(api, db, services.NoteLogServiceInstance)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
