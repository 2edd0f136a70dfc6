// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	"socialsync/internal/ai"
	"socialsync/internal/cache"
	"socialsync/internal/config"
	"socialsync/internal/database"
	"socialsync/internal/middleware"
	"socialsync/internal/models"
	"socialsync/internal/repository"
	"socialsync/internal/session"
	"socialsync/internal/trends"
	"socialsync/internal/uploads"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       session.Store
	uploads        *uploads.Store
	trendCache     *trends.Cache
	aiProxy        *ai.Proxy
	userRepo       repository.UserRepository
	taskRepo       repository.TaskRepository
	postRepo       repository.PostRepository
	campaignRepo   repository.CampaignRepository
	settingsRepo   repository.SettingsRepository
	messageRepo    repository.MessageRepository
	blockRepo      repository.BlockRepository
	liveRepo       repository.LiveSessionRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	uploadStore, err := uploads.NewStore(cfg.UploadsDir)
	if err != nil {
		return nil, err
	}

	srv, err := NewServerWithDeps(cfg, db, redisClient, uploadStore)
	if err != nil {
		return nil, err
	}

	if cfg.OpenAIAPIKey != "" {
		srv.aiProxy = ai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIMaxTokens)
	}

	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Use this in tests or when a bootstrap layer establishes
// DB/Redis explicitly. Sessions live in Redis when a client is
// provided, otherwise in process memory.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploadStore *uploads.Store) (*Server, error) {
	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient)
	} else {
		sessions = session.NewMemoryStore()
	}

	ttl := time.Duration(cfg.TrendCacheTTL) * time.Second

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("socialsync-api"),
		sessions:       sessions,
		uploads:        uploadStore,
		trendCache:     trends.New(cfg.TrendsURL, ttl),
		userRepo:       repository.NewUserRepository(db),
		taskRepo:       repository.NewTaskRepository(db),
		postRepo:       repository.NewPostRepository(db),
		campaignRepo:   repository.NewCampaignRepository(db),
		settingsRepo:   repository.NewSettingsRepository(db),
		messageRepo:    repository.NewMessageRepository(db),
		blockRepo:      repository.NewBlockRepository(db),
		liveRepo:       repository.NewLiveSessionRepository(db),
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. the
	// limiter) so browser clients still receive CORS headers on errors.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes (the only unauthenticated API surface)
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Everything below requires a valid session cookie.
	protected := api.Group("", s.AuthRequired())

	tasks := protected.Group("/tasks")
	tasks.Get("/", s.GetTasks)
	tasks.Post("/", s.CreateTask)
	tasks.Put("/:id", s.UpdateTask)
	tasks.Delete("/:id", s.DeleteTask)

	posts := protected.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.CreatePost)
	posts.Delete("/:id", s.DeletePost)

	campaigns := protected.Group("/ads/campaigns")
	campaigns.Get("/", s.GetCampaigns)
	campaigns.Post("/", s.CreateCampaign)
	campaigns.Post("/custom", s.CreateCustomCampaign)
	campaigns.Patch("/:id", s.UpdateCampaign)
	campaigns.Delete("/:id", s.DeleteCampaign)

	settings := protected.Group("/settings")
	settings.Get("/", s.GetSettings)
	settings.Post("/", s.UpdateSettings)

	blocked := protected.Group("/privacy/blocked")
	blocked.Get("/", s.GetBlockedUsers)
	blocked.Post("/", s.BlockUser)
	blocked.Delete("/:id", s.UnblockUser)

	account := protected.Group("/account")
	account.Get("/info", s.GetAccountInfo)
	account.Put("/info", s.UpdateAccountInfo)
	account.Post("/profile-photo", s.UploadProfilePhoto)
	account.Post("/password", s.ChangePassword)
	account.Post("/deactivate", s.DeactivateAccount)
	account.Delete("/delete", s.DeleteAccount)

	inbox := protected.Group("/inbox")
	inbox.Get("/users", s.GetInboxUsers)
	inbox.Get("/conversations", s.GetConversations)
	inbox.Get("/chats/:id/messages", s.GetChatMessages)
	inbox.Post("/chats/:id/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_chat"), s.SendChatMessage)
	inbox.Delete("/chats/:id", s.DeleteChat)

	protected.Get("/notifications", s.GetNotifications)

	live := protected.Group("/live")
	live.Get("/summary", s.GetLiveSummary)
	live.Get("/creators", s.GetLiveCreators)
	live.Post("/toggle", s.ToggleLive)

	protected.Get("/trends/creators", s.GetTrendingCreators)

	protected.Post("/ai/chat", middleware.RateLimit(
		s.redis, 10, time.Minute, "ai_chat"), s.AIChat)

	protected.Get("/analytics/:platform", s.GetPlatformAnalytics)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: sessions fall back to the in-memory store.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the session-gate middleware. A caller is
// authenticated if the session cookie carries a validly signed token
// that resolves to a stored session; otherwise the request is rejected
// with 401 and no data.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := s.sessionToken(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		sess, err := s.sessions.Get(c.Context(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if sess == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		c.Locals("userID", sess.UserID)
		c.Locals("session", sess)
		// Sync to UserContext for logging and downstream layers
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, sess.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "SocialSync API",
		BodyLimit: 10 * 1024 * 1024, // uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
