// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/featureflags"
	"inkwell/internal/mailer"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
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
	flags          *featureflags.Manager

	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
	commentRepo    repository.CommentRepository
	taxonomyRepo   repository.TaxonomyRepository
	pageRepo       repository.PageRepository
	contactRepo    repository.ContactRepository
	statsRepo      repository.StatsRepository

	postService       *service.PostService
	engagementService *service.EngagementService
	commentService    *service.CommentService
	taxonomyService   *service.TaxonomyService
	statsService      *service.StatsService
	contactService    *service.ContactService
	pageService       *service.PageService
	userService       *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		engagementRepo: repository.NewEngagementRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		taxonomyRepo:   repository.NewTaxonomyRepository(db),
		pageRepo:       repository.NewPageRepository(db),
		contactRepo:    repository.NewContactRepository(db),
		statsRepo:      repository.NewStatsRepository(db),
	}

	server.postService = service.NewPostService(server.postRepo, server.taxonomyRepo, server.userRepo)
	server.engagementService = service.NewEngagementService(server.engagementRepo, server.postRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.taxonomyService = service.NewTaxonomyService(server.taxonomyRepo)
	server.statsService = service.NewStatsService(server.statsRepo, server.postRepo)
	server.contactService = service.NewContactService(server.contactRepo, mailer.NewFromConfig(cfg), cfg.ContactEmail)
	server.pageService = service.NewPageService(server.pageRepo)
	server.userService = service.NewUserService(server.userRepo)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	s.promMiddleware = middleware.InitMetrics(app, "inkwell-api")
	app.Use(middleware.MetricsMiddleware(s.promMiddleware))

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Session-Token",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (300 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
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

	// Live process metrics page for operators
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell API Metrics",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.AuthRequired(), s.Refresh)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public post routes
	posts := api.Group("/posts")
	// Text search hits ILIKE scans, so the listing gets its own budget on
	// top of the global limiter.
	posts.Get("/", middleware.RateLimit(
		s.redis, 120, time.Minute, "search"), s.GetPosts)
	// Specific /:slug/:resource routes before the generic /:slug route
	posts.Get("/:slug/related", s.GetRelatedPosts)
	posts.Get("/:slug/comments", s.GetComments)
	posts.Post("/:slug/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:slug/like", middleware.RateLimit(
		s.redis, 30, time.Minute, "like"), s.ToggleLike)
	posts.Post("/:slug/save", s.AuthRequired(), s.ToggleSave)
	posts.Get("/:slug", s.GetPost)

	// Taxonomy
	api.Get("/categories", s.GetCategories)
	api.Get("/tags", s.GetTags)

	// Public stats and pages
	api.Get("/stats", s.GetStats)
	api.Get("/pages/about", s.GetAboutPage)
	api.Get("/pages/contact", s.GetContactPage)

	// Contact form
	api.Post("/contact", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "contact"), s.SubmitContact)

	// Authenticated reader routes
	me := api.Group("/me", s.AuthRequired())
	me.Get("/", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Get("/saved", s.GetSavedPosts)

	// Staff dashboard
	dashboard := api.Group("/dashboard", s.AuthRequired(), s.StaffRequired())
	dashboard.Get("/", s.GetDashboard)
	dashboard.Get("/posts", s.GetDashboardPosts)
	dashboard.Post("/posts", s.CreatePost)
	dashboard.Put("/posts/:id", s.UpdatePost)
	dashboard.Delete("/posts/:id", s.DeletePost)
	dashboard.Put("/comments/:id/approval", s.SetCommentApproval)
	dashboard.Delete("/comments/:id", s.DeleteComment)
	dashboard.Post("/categories", s.CreateCategory)
	dashboard.Delete("/categories/:id", s.DeleteCategory)
	dashboard.Post("/tags", s.CreateTag)
	dashboard.Delete("/tags/:id", s.DeleteTag)
	dashboard.Put("/pages/about", s.UpdateAboutPage)
	dashboard.Put("/pages/contact", s.UpdateContactPage)
	dashboard.Get("/messages", s.GetContactMessages)
	dashboard.Post("/messages/:id/read", s.MarkContactMessageRead)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis degrades the
// report but does not fail readiness; the API works without a cache.
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "disabled"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus == "unhealthy" {
		overallStatus = "degraded"
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

// StaffRequired returns middleware that rejects non-staff users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		staff, err := s.isStaffByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !staff {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Staff access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, err := s.parseUserToken(c, tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// parseUserToken validates a JWT and returns the user ID it carries.
func (s *Server) parseUserToken(c *fiber.Ctx, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "inkwell-api" {
		return 0, models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "inkwell-client" {
		return 0, models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}

	// Check JTI for revocation
	if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
		isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
		if err == nil && isBlacklisted > 0 {
			return 0, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	return uint(userID), nil
}

// optionalUserID attempts to extract userID from the Authorization header
// but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	userID, err := s.parseUserToken(c, parts[1])
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell API",
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
