package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/handlers"
	"github.com/localnerve/bakery-api/internal/logging"
	"github.com/localnerve/bakery-api/internal/middleware"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/storage"

	_ "github.com/localnerve/bakery-api/docs/api" // Swagger docs
)

// @title Bakery API
// @version 1.0.0
// @description Storefront data service for the bakery brand site
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/bakery-api
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	envFile := flag.String("f", "", "path to a .env file")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment file: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the storage backend selected in configuration
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("backend", string(cfg.Backend)), zap.Error(err))
	}
	defer backend.Close()

	svc := services.New(backend, log, services.OptionsFromConfig(cfg))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "bakery-api",
		ErrorHandler: handlers.ErrorHandler(log),
		// room for the largest upload plus the multipart envelope
		BodyLimit:   (cfg.UploadLimitMB + 1) << 20,
		ProxyHeader: cfg.ProxyHeader,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("bakery-api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	handlers.RegisterRoutes(api, cfg, svc, log)

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info("gracefully shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warn("shutdown did not complete", zap.Error(err))
		}
	}()

	// Start server
	log.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("backend", backend.Name()),
		zap.Bool("mail", cfg.MailEnabled()),
		zap.Bool("adminGuard", cfg.AdminToken != ""),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
