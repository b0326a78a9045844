package main

import (
	"context"
	"log"
	"net/http"

	"github.com/askarbek-a/linkup/internal/config"
	"github.com/askarbek-a/linkup/internal/database"
	"github.com/askarbek-a/linkup/internal/handlers"
	"github.com/askarbek-a/linkup/internal/jobs"
	"github.com/askarbek-a/linkup/internal/repository"
	cron "github.com/askarbek-a/linkup/internal/scheduler"
	"github.com/askarbek-a/linkup/internal/seed"
	"github.com/askarbek-a/linkup/internal/services"
	"github.com/askarbek-a/linkup/pkg/email"
	"github.com/askarbek-a/linkup/pkg/logger"
	"github.com/askarbek-a/linkup/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	postRepo := repository.NewPostRepository(db)
	ventRepo := repository.NewVentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	connectionService := services.NewConnectionService(connectionRepo, userRepo, notificationService, email.SMTPMailer{})
	messageService := services.NewMessageService(messageRepo, connectionService)
	postService := services.NewPostService(postRepo, userRepo)
	ventService := services.NewVentService(ventRepo)
	oauthService := services.NewOAuthService(cfg, userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	oauthHandler := handlers.NewOAuthHandler(oauthService, cfg)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	messageHandler := handlers.NewMessageHandler(messageService)
	postHandler := handlers.NewPostHandler(postService)
	ventHandler := handlers.NewVentHandler(ventService, cfg.UploadDir)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	chatGateway := handlers.NewChatGateway(messageService, cfg.JWTSecret)

	if cfg.SeedDemoData {
		if err := seed.Load(context.Background(), userRepo, connectionRepo, postRepo); err != nil {
			logger.Log.Errorf("Failed to seed demo data: %v", err)
		}
	}

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Auth routes (public)
	router.HandleFunc("/api/auth/signup", userHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/api/auth/login", userHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/api/auth/google/url", oauthHandler.GoogleURLHandler).Methods("GET")
	router.HandleFunc("/api/auth/google/callback", oauthHandler.GoogleCallbackHandler).Methods("POST")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedUserRoutes.HandleFunc("/search", userHandler.SearchUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/trending", userHandler.TrendingUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")

	// Connection routes
	protectedConnectionRoutes := router.PathPrefix("/connections").Subrouter()
	protectedConnectionRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedConnectionRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedConnectionRoutes.HandleFunc("/requests", connectionHandler.GetPendingRequestsHandler).Methods("GET")
	protectedConnectionRoutes.HandleFunc("/requests/{id}/accept", connectionHandler.AcceptRequestHandler).Methods("POST")
	protectedConnectionRoutes.HandleFunc("/requests/{id}/reject", connectionHandler.RejectRequestHandler).Methods("POST")
	protectedConnectionRoutes.HandleFunc("/{id}/request", connectionHandler.SendRequestHandler).Methods("POST")
	protectedConnectionRoutes.HandleFunc("/{id}", connectionHandler.DisconnectHandler).Methods("DELETE")
	protectedConnectionRoutes.HandleFunc("", connectionHandler.GetConnectionsHandler).Methods("GET")

	// Message routes
	protectedMessageRoutes := router.PathPrefix("/messages").Subrouter()
	protectedMessageRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedMessageRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedMessageRoutes.HandleFunc("", messageHandler.SendMessageHandler).Methods("POST")
	protectedMessageRoutes.HandleFunc("/unread/count", messageHandler.UnreadCountHandler).Methods("GET")
	protectedMessageRoutes.HandleFunc("/{id}/read", messageHandler.MarkAsReadHandler).Methods("POST")
	protectedMessageRoutes.HandleFunc("/{userId}", messageHandler.GetConversationHandler).Methods("GET")

	// Post routes
	protectedPostRoutes := router.PathPrefix("/api/posts").Subrouter()
	protectedPostRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedPostRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedPostRoutes.HandleFunc("", postHandler.GetFeedHandler).Methods("GET")
	protectedPostRoutes.HandleFunc("", postHandler.CreatePostHandler).Methods("POST")
	protectedPostRoutes.HandleFunc("/{id}", postHandler.DeletePostHandler).Methods("DELETE")
	protectedPostRoutes.HandleFunc("/{id}/like", postHandler.LikePostHandler).Methods("POST")

	// Vent routes
	protectedVentRoutes := router.PathPrefix("/vents").Subrouter()
	protectedVentRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedVentRoutes.HandleFunc("", ventHandler.CreateVentHandler).Methods("POST")
	protectedVentRoutes.HandleFunc("", ventHandler.ListVentsHandler).Methods("GET")
	protectedVentRoutes.HandleFunc("/{id}", ventHandler.UpdateVentHandler).Methods("PUT")
	protectedVentRoutes.HandleFunc("/{id}", ventHandler.DeleteVentHandler).Methods("DELETE")
	protectedVentRoutes.HandleFunc("/{id}/voice", ventHandler.UploadVoiceHandler).Methods("POST")

	// Notification routes
	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	protectedNotificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// WebSocket chat (token auth via query parameter)
	router.HandleFunc("/ws/chat", chatGateway.ChatWebSocketHandler)

	// Uploaded voice notes and media
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background maintenance jobs
	digest := jobs.NewUnreadDigestNotifier(messageRepo, notificationService)
	cron.StartCronJobs(notificationService, digest)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	logger.Log.Infof("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
