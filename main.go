// main.go - ULenguage API server
package main

import (
	"log"
	"os"
	"time"

	"ulenguage/cache"
	"ulenguage/database"
	"ulenguage/handlers"
	"ulenguage/middleware"
	"ulenguage/utils"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	utils.InitLogger()
	defer utils.Logger.Sync()
	utils.InitMetrics()

	database.InitDB()
	defer database.CloseDB()

	if err := cache.InitRedis(); err != nil {
		utils.Logger.Warn("redis unavailable, translation cache disabled", zap.Error(err))
	}
	defer cache.Close()

	// Handler wiring. Explorer reuses the gemini client and translation
	// resolver, so it comes last.
	handlers.InitAchievementHandlers()
	handlers.InitTranslationHandlers()
	handlers.InitCultureHandlers()
	handlers.InitExplorerHandlers()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    12 * 1024 * 1024, // image uploads
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Seed-Key",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())
	app.Use(middleware.MetricsMiddleware())

	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/google", handlers.GoogleLogin)
	authGroup.Get("/google/redirect", handlers.GoogleRedirect)
	authGroup.Get("/google/callback", handlers.GoogleCallback)
	authGroup.Get("/me", middleware.AuthMiddleware, handlers.GetProfile)

	// Subscription plans
	api.Get("/planes", handlers.GetPlans)

	// Seeding
	api.Post("/seed/run", handlers.RunSeeds)

	// Geo-achievements (require authentication)
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Post("/unlock", handlers.UnlockAchievement)
	achievementGroup.Post("/sync", handlers.SyncAchievements)
	achievementGroup.Get("/me", handlers.GetMyAchievements)

	// Zones
	api.Get("/zones", handlers.GetAllZones)
	api.Get("/zones/nearby", handlers.GetNearbyZones)

	// Translation
	api.Post("/translate", handlers.TranslateText)
	api.Post("/translate/hybrid", handlers.ResolveTranslation)

	// Curated Quechua dictionary
	api.Get("/quechua/all", handlers.GetAllQuechuaTerms)
	api.Get("/quechua/search", handlers.SearchQuechuaTerm)
	api.Post("/quechua/add", middleware.AuthMiddleware, handlers.AddQuechuaTerm)

	// Explorer
	api.Get("/explorer/places", handlers.GetPlaces)

	// Culture image analysis
	api.Post("/culture/scan", middleware.AuthMiddleware, handlers.AnalyzeImage)

	// Live achievement feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/achievements", websocket.New(handlers.AchievementFeed))

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"redis":     cache.Available(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	utils.Logger.Info("server starting",
		zap.String("port", port),
		zap.String("env", getEnv("APP_ENV", "development")))
	log.Printf("🚀 HTTP server starting on port %s", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// customErrorHandler keeps unexpected errors in the same response shape
// the handlers use.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
