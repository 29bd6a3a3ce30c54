// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/app/handlers"
	"github.com/chitrakalakar/backend/app/middleware"
	"github.com/chitrakalakar/backend/config"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app               *fiber.App
	cfg               *config.ProductionConfig
	authMiddleware    *middleware.AuthMiddleware
	enquiryHandler    handlers.EnquiryHandlerInterface
	profileHandler    handlers.ProfileHandlerInterface
	artworkHandler    handlers.ArtworkHandlerInterface
	exhibitionHandler handlers.ExhibitionHandlerInterface
	adminHandler      handlers.AdminHandlerInterface
	statsHandler      handlers.StatsHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	authMiddleware *middleware.AuthMiddleware,
	enquiryHandler handlers.EnquiryHandlerInterface,
	profileHandler handlers.ProfileHandlerInterface,
	artworkHandler handlers.ArtworkHandlerInterface,
	exhibitionHandler handlers.ExhibitionHandlerInterface,
	adminHandler handlers.AdminHandlerInterface,
	statsHandler handlers.StatsHandlerInterface,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Chitrakalakar API",
		ServerHeader: "Chitrakalakar",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:               app,
		cfg:               cfg,
		authMiddleware:    authMiddleware,
		enquiryHandler:    enquiryHandler,
		profileHandler:    profileHandler,
		artworkHandler:    artworkHandler,
		exhibitionHandler: exhibitionHandler,
		adminHandler:      adminHandler,
		statsHandler:      statsHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	// Global middleware
	r.setupMiddleware()

	// API routes
	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// Prometheus metrics
	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Apply general rate limiting to all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.GlobalRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			// Skip rate limiting for health checks
			return c.Path() == "/api/v1/health"
		},
	}))

	// Public routes
	api.Get("/stats", r.statsHandler.PlatformStats)
	api.Get("/artists", r.profileHandler.ListArtists)
	api.Get("/artworks", r.artworkHandler.List)
	api.Get("/artworks/:id", r.artworkHandler.Get)
	api.Get("/exhibitions", r.exhibitionHandler.List)

	// Authenticated routes
	authed := api.Group("", r.authMiddleware.Authenticate())

	profile := authed.Group("/profile")
	profile.Get("", r.profileHandler.Get)
	profile.Put("", r.profileHandler.Update)
	profile.Post("/apply-artist", r.profileHandler.ApplyAsArtist)

	enquiries := authed.Group("/enquiries")
	// Stricter limit: enquiry submission fans out matching queries
	enquiries.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.EnquiryRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
	}))
	enquiries.Post("", r.enquiryHandler.Submit)
	enquiries.Get("", r.enquiryHandler.ListMine)
	enquiries.Get("/:id/matches", r.enquiryHandler.GetMatches)
	enquiries.Post("/:id/reveal/:artist_id", r.enquiryHandler.RevealContact)

	authed.Post("/artworks", r.artworkHandler.Create)
	authed.Get("/artworks/mine", r.artworkHandler.ListMine)
	authed.Post("/exhibitions", r.exhibitionHandler.Create)
	authed.Get("/exhibitions/mine", r.exhibitionHandler.ListMine)

	// Admin and reviewer routes; fine-grained capability checks live in the flows
	admin := authed.Group("/admin", middleware.RequireCapability(func(role models.Role) bool {
		return role.CanReviewArtists() || role.CanReviewArtworks()
	}))
	admin.Get("/dashboard", r.adminHandler.Dashboard)
	admin.Get("/artists/pending", r.adminHandler.ListPendingArtists)
	admin.Post("/artists/:id/review", r.adminHandler.ReviewArtist)
	admin.Get("/artworks/pending", r.adminHandler.ListPendingArtworks)
	admin.Post("/artworks/:id/review", r.adminHandler.ReviewArtwork)
	admin.Get("/exhibitions/pending", r.adminHandler.ListPendingExhibitions)
	admin.Post("/exhibitions/:id/review", r.adminHandler.ReviewExhibition)
	admin.Post("/sub-admins", r.adminHandler.CreateSubAdmin)
	admin.Get("/enquiries", r.adminHandler.ListEnquiries)
	admin.Get("/enquiries/export", r.adminHandler.ExportEnquiries)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000, // 1 year
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	// CORS middleware
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.CORSAllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Prometheus middleware
	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			// Skip logging for health checks in production
			return c.Path() == "/api/v1/health"
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "chitrakalakar-api",
		},
	})
}

// notFoundHandler handles unmatched routes
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	// Default error code
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a fiber.*Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
