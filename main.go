package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	zlog "github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"scoops/internal/config"
	"scoops/internal/handlers"
	"scoops/internal/middleware"
	"scoops/internal/models"
	"scoops/internal/notifications"
	"scoops/internal/repositories"
	"scoops/internal/services"
	"scoops/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := config.NewLogger(cfg.Logger)
	zlog.Logger = logger

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Review{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- Order event stream (optional) ---
	var mqClient *rabbitmq.Client
	var events rabbitmq.Publisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient
		logger.Info().Msg("order event stream connected")
	} else {
		logger.Info().Msg("RABBITMQ_URL not set, order event stream disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Notification channels ---
	dispatcher := notifications.NewDispatcher(
		notifications.NewEmailSender(cfg.Notifications),
		notifications.NewWhatsAppSender(cfg.Notifications),
		notifications.NewSMSSender(cfg.Notifications),
		cfg.Notifications.AdminEmail,
		cfg.Notifications.AdminPhone,
		logger,
	)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, dispatcher, events, logger)
	reviewService := services.NewReviewService(reviewRepo, productRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	auth := middleware.AuthRequired(authService)
	admin := middleware.AdminOnly()

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1, auth, admin)
	orderHandler.RegisterRoutes(apiV1, auth, admin)
	reviewHandler.RegisterRoutes(apiV1, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	// Downstream consumers (inventory, analytics) would hang off this
	// queue; here the events are logged for diagnostics.
	if mqClient != nil {
		consumerLog := logger.With().Str("component", "order_event_consumer").Logger()
		err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			consumerLog.Info().
				Str("type", msg.Type).
				RawJSON("event", msg.Body).
				Msg("order event received")
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to start order event consumer")
		}
	}

	// --- Start HTTP server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.App.Port).Msg("starting server")
		if err := app.Listen(cfg.App.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}

	logger.Info().Msg("server gracefully stopped")
}
