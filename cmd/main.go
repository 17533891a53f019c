package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/auth"
	"github.com/Abror-150/Online-shop/internal/config"
	"github.com/Abror-150/Online-shop/internal/database"
	"github.com/Abror-150/Online-shop/internal/events"
	"github.com/Abror-150/Online-shop/internal/handlers"
	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/notifier"
	"github.com/Abror-150/Online-shop/internal/otp"
	"github.com/Abror-150/Online-shop/internal/repository"
	"github.com/Abror-150/Online-shop/internal/routes"
	"github.com/Abror-150/Online-shop/internal/server"
	"github.com/Abror-150/Online-shop/internal/services"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting online-shop in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	ctx := context.Background()

	db, mongoClient, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		sugar.Fatalf("failed to ensure user indexes: %v", err)
	}

	rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	smsClient := notifier.NewEskizClient(cfg.Eskiz.BaseURL, cfg.Eskiz.Token, cfg.Eskiz.From, cfg.Eskiz.MaxFailures, logger)
	emailClient := notifier.NewBrevoClient(cfg.Brevo.APIKey, cfg.Brevo.FromEmail, cfg.Brevo.FromName, logger)
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic)
	if producer == nil {
		sugar.Warn("Kafka brokers not configured, order events disabled")
	}

	userRepo := repository.NewMongoUserRepo(db)
	regionRepo := repository.NewMongoRegionRepo(db)
	categoryRepo := repository.NewMongoCategoryRepo(db)
	productRepo := repository.NewMongoProductRepo(db)
	commentRepo := repository.NewMongoCommentRepo(db)
	orderRepo := repository.NewMongoOrderRepo(db)

	jwtManager := auth.NewJWTManager(
		cfg.App.JWT.AccessSecret,
		cfg.App.JWT.RefreshSecret,
		cfg.App.JWT.AccessTTLMinutes,
		cfg.App.JWT.RefreshTTLDays,
	)
	hasher := auth.NewPasswordHasher(cfg.Security.PasswordHashCost)
	otpEngine := otp.NewEngine()

	authSvc := services.NewAuthService(
		userRepo,
		smsClient,
		emailClient,
		rdb,
		otpEngine,
		hasher,
		jwtManager,
		cfg.Security.PhoneOTPSalt,
		cfg.Security.EmailOTPSalt,
		cfg.Security.OtpRateLimitPerPhonePerHour,
		logger,
	)

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, logger),
		User:     handlers.NewUserHandler(userRepo, hasher, logger),
		Region:   handlers.NewRegionHandler(regionRepo, logger),
		Category: handlers.NewCategoryHandler(categoryRepo, logger),
		Product:  handlers.NewProductHandler(productRepo, logger),
		Comment:  handlers.NewCommentHandler(commentRepo, logger),
		Order:    handlers.NewOrderHandler(orderRepo, producer, logger),
	}
	guard := middleware.NewAuthMiddleware(jwtManager, logger)

	app := server.New(cfg, h, guard, logger)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutCtx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := producer.Close(); err != nil {
		sugar.Errorf("Kafka producer close error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}
	if err := mongoClient.Disconnect(shutCtx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
