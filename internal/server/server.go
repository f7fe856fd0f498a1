// Package server contains the HTTP handlers of the StudyGlobe API.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "studyglobe/docs" // swagger docs
	"studyglobe/internal/cache"
	"studyglobe/internal/config"
	"studyglobe/internal/database"
	"studyglobe/internal/featureflags"
	"studyglobe/internal/middleware"
	"studyglobe/internal/models"
	"studyglobe/internal/repository"
	"studyglobe/internal/service"
	"studyglobe/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
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
	limiter        *middleware.Limiter
	featureFlags   *featureflags.Manager
	blobs          *storage.Service
	uploadRoot     string

	postcardService    *service.PostcardService
	customPointService *service.CustomPointService
	friendService      *service.FriendService
}

// NewServer connects the database, Redis and blob store described by cfg.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	store, err := NewBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, cache.GetClient(), store)
}

// NewBlobStore returns the blob store selected by STORAGE_BACKEND.
func NewBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		return store, nil
	default:
		store, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		return store, nil
	}
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.BlobStore) (*Server, error) {
	blobs := storage.NewService(store, cfg.MaxUploadBytes())

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("studyglobe-api"),
		limiter:        middleware.NewLimiter(redisClient, cfg.Env),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		blobs:          blobs,
	}
	if local, ok := store.(*storage.LocalStore); ok {
		s.uploadRoot = local.Root()
	}

	s.postcardService = service.NewPostcardService(repository.NewPostcardRepository(db), blobs)
	s.customPointService = service.NewCustomPointService(repository.NewCustomPointRepository(db), blobs)
	s.friendService = service.NewFriendService(repository.NewFriendRepository(db), blobs)
	return s, nil
}

// Friends exposes the friend service for startup seeding.
func (s *Server) Friends() *service.FriendService {
	return s.friendService
}

// NewApp builds a Fiber app with the server's JSON codec and error handler.
func (s *Server) NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:     "StudyGlobe API",
		BodyLimit:   int(s.config.MaxUploadBytes())*2 + 1<<20,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, &models.AppError{Code: codeForStatus(fe.Code), Message: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		// uploaded images are embedded by the web client on another origin
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(s.config.Origins(), ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Traceparent",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	if s.uploadRoot != "" {
		app.Static(storage.PublicPrefix, s.uploadRoot, fiber.Static{MaxAge: 86400})
	}

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)
	api.Get("/swagger/*", swagger.HandlerDefault)

	writes := s.limiter.Handler("uploads", 30, time.Minute, middleware.FailOpen)

	postcards := api.Group("/postcards")
	postcards.Get("/", s.GetPostcards)
	postcards.Post("/", writes, s.CreatePostcard)
	postcards.Put("/:id/like", s.limiter.Handler("likes", 120, time.Minute, middleware.FailOpen), s.LikePostcard)
	postcards.Get("/:id", s.GetPostcard)
	postcards.Delete("/:id", s.DeletePostcard)

	points := api.Group("/custom-points")
	points.Get("/", s.GetCustomPoints)
	points.Post("/", writes, s.CreateCustomPoint)
	points.Put("/:id", writes, s.UpdateCustomPoint)
	points.Delete("/:id", s.DeleteCustomPoint)

	friends := api.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/search", s.limiter.Handler("search", 60, time.Minute, middleware.FailOpen), s.SearchFriends)
	friends.Post("/", writes, s.CreateFriend)

	api.Get("/board", s.GetBoard)
	api.Get("/stamps", s.GetStamps)
	api.Get("/feature-flags", s.GetFeatureFlags)
}

// Start serves on the configured port until Shutdown.
func (s *Server) Start() error {
	app := s.NewApp()
	s.app = app
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port, "env", s.config.Env)
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP server and closes the database and Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
