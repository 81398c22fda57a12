package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"groupfit/config"
	"groupfit/database"
	"groupfit/handlers"
	"groupfit/middleware"
	"groupfit/observability"
)

func main() {
	// Load configuration
	cfg := config.GetConfig()

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GroupFit",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173,http://localhost:3000,http://localhost:8080",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(observability.HTTPMetrics())

	// Prometheus exposition
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes
	api := app.Group("/api")

	// Rate limiter for auth endpoints (5 requests per minute per IP)
	authLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many attempts. Please try again later.",
			})
		},
	})

	// Public routes (with rate limiting on auth)
	api.Post("/register", authLimiter, handlers.Register)
	api.Post("/login", authLimiter, handlers.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired())
	protected.Get("/user", handlers.GetCurrentUser)
	protected.Delete("/user/delete", handlers.DeleteAccount)

	// Personal data (profile photo log)
	protected.Get("/profile", handlers.GetProfile)
	protected.Post("/profile", handlers.UpdateProfile)

	// Group routes
	groups := protected.Group("/groups")
	groups.Get("/", handlers.ListGroups)
	groups.Post("/", handlers.CreateGroup)
	groups.Post("/:id/join", handlers.JoinGroup)
	groups.Post("/:id/leave", handlers.LeaveGroup)
	groups.Post("/:id/delete", handlers.DeleteGroup)
	groups.Get("/:id/weekly-activities", handlers.WeeklyActivities)
	groups.Get("/:id/recent-activities", handlers.RecentActivities)

	// Activity routes
	activities := protected.Group("/activities")
	activities.Get("/", handlers.ListActivities)
	activities.Post("/", handlers.CreateActivity)
	activities.Put("/:id", handlers.UpdateActivity)
	activities.Delete("/:id", handlers.DeleteActivity)

	// Weight routes
	weight := protected.Group("/weight")
	weight.Get("/", handlers.ListWeights)
	weight.Post("/", handlers.CreateWeight)
	weight.Put("/:id", handlers.UpdateWeight)
	weight.Delete("/:id", handlers.DeleteWeight)

	// Leaderboard
	protected.Get("/leaderboard", handlers.Leaderboard)

	// Admin-only routes
	admin := protected.Group("/admin", middleware.AdminRequired())
	admin.Get("/overview", handlers.AdminOverview)
	admin.Get("/audit/logs", handlers.ListAuditLogs)
	admin.Get("/audit/actions", handlers.GetAuditActions)
	admin.Get("/settings", handlers.GetSettings)
	admin.Put("/settings", handlers.UpdateSettings)

	// Serve static files (frontend) in production
	if cfg.Production {
		app.Static("/", "./static")
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile("./static/index.html")
		})
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting GroupFit on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
