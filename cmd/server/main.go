package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/config"
	"github.com/GianniRod/Real-Futbol/internal/auth"
	"github.com/GianniRod/Real-Futbol/internal/database"
	"github.com/GianniRod/Real-Futbol/internal/forum"
	"github.com/GianniRod/Real-Futbol/internal/handlers"
	"github.com/GianniRod/Real-Futbol/internal/middleware"
	"github.com/GianniRod/Real-Futbol/internal/repository"
	"github.com/GianniRod/Real-Futbol/internal/store"
	"github.com/GianniRod/Real-Futbol/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	log.Println("Running database migrations...")
	if err := database.RunMigrations(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Connect the live store
	live, err := store.NewLive(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Warning: failed to connect to Redis: %v", err)
		log.Println("Running without live feeds - clients fall back to HTTP snapshots")
		live = nil
	} else {
		defer live.Close()
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	modRepo := repository.NewModerationRepository(db)

	// The developer account is a fixed identity from configuration
	developerUID := uuid.Nil
	if cfg.Forum.DeveloperUID != "" {
		developerUID, err = uuid.Parse(cfg.Forum.DeveloperUID)
		if err != nil {
			log.Fatalf("Invalid FORUM_DEVELOPER_UID: %v", err)
		}
	} else {
		log.Println("Warning: FORUM_DEVELOPER_UID not set - no developer account exists")
	}

	resolver := forum.NewResolver(developerUID, modRepo)
	moderation := forum.NewModeration(userRepo, msgRepo, modRepo, resolver, live)

	deps := forum.Deps{
		Messages:           msgRepo,
		Reactions:          reactionRepo,
		Users:              userRepo,
		Moderation:         moderation,
		Resolver:           resolver,
		Live:               live,
		MaxWatchedMessages: cfg.Forum.MaxWatchedMessages,
		MaxMessageLength:   cfg.Forum.MaxMessageLength,
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, resolver, jwtService)
	forumHandler := handlers.NewForumHandler(deps)
	moderationHandler := handlers.NewModerationHandler(moderation)

	// Initialize WebSocket hub (only if the live store is available)
	var wsHandler *websocket.Handler
	if live != nil {
		hub := websocket.NewHub()
		go hub.Run()
		wsHandler = websocket.NewHandler(hub, jwtService, deps, cfg.CORS.AllowedOrigins)
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Reading a forum feed needs no session
	router.GET("/forum/:context/messages", forumHandler.GetFeed)

	// WebSocket endpoint (only if the live store is available)
	if wsHandler != nil {
		router.GET("/ws", wsHandler.HandleWebSocket)
	}

	// Protected routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	{
		// User routes
		api.GET("/me", authHandler.GetMe)

		// Forum routes
		api.GET("/forum/:context/messages", forumHandler.GetFeed)
		api.POST("/messages", forumHandler.PostMessage)
		api.POST("/reactions", forumHandler.React)
		api.DELETE("/messages/:id", forumHandler.DeleteMessage)

		// Moderation routes
		api.POST("/moderation/mutes", moderationHandler.MuteUser)
		api.DELETE("/moderation/mutes/:user_id", moderationHandler.UnmuteUser)
		api.GET("/moderation/mutes/:user_id", moderationHandler.MuteStatus)
		api.POST("/moderation/bans", moderationHandler.BanUser)
		api.DELETE("/moderation/bans/:user_id", moderationHandler.UnbanUser)
		api.GET("/moderation/moderators", moderationHandler.ListModerators)
		api.POST("/moderation/moderators", moderationHandler.AddModerator)
		api.DELETE("/moderation/moderators/:user_id", moderationHandler.RemoveModerator)

		// WebSocket info (only if the live store is available)
		if wsHandler != nil {
			api.GET("/online-users", wsHandler.GetOnlineUsers)
		}
	}

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Starting Real-Futbol forum server on %s (env: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
