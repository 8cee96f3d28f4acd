package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"services-backend/config"
	"services-backend/events"
	"services-backend/models"
	"services-backend/repository"
	"services-backend/routes"
	"services-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := db.SetupJoinTable(&models.Service{}, "Barbers", &models.ServiceBarber{}); err != nil {
		logger.Fatal("join table setup failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Barber{},
		&models.Reservation{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	if err := seed(db, cfg, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer conn.Close()

	publisher, err := events.NewPublisher(conn, logger)
	if err != nil {
		logger.Fatal("publisher setup failed", zap.Error(err))
	}
	defer publisher.Close()

	uow := repository.NewUnitOfWork(db)
	reconciler := services.NewReconciler(logger)
	sync := services.NewSyncService(uow, reconciler, publisher, logger)
	catalog := services.NewCatalogService(uow, reconciler, publisher, logger)
	categories := services.NewCategoryService(uow, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(conn, sync, logger)
	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("consumer setup failed", zap.Error(err))
	}

	audit := services.NewAvailabilityAudit(uow, publisher, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", audit.Run); err != nil {
		logger.Fatal("audit schedule failed", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := routes.SetupRouter(db, catalog, categories, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Run(":" + cfg.Port)
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Fatal("server stopped", zap.Error(err))
	}
}
