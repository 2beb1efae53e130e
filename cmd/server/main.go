package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sarab71/fossnflories/internal/auth"
	c "github.com/Sarab71/fossnflories/internal/cache"
	"github.com/Sarab71/fossnflories/internal/config"
	apphttp "github.com/Sarab71/fossnflories/internal/http"
	"github.com/Sarab71/fossnflories/internal/mail"
	"github.com/Sarab71/fossnflories/internal/repository"
	s "github.com/Sarab71/fossnflories/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, repository.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDBName,
		MaxPool:  cfg.MongoMaxPool,
		MinPool:  cfg.MongoMinPool,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	logger.Info().Str("uri", cfg.MongoURI).Msg("connected to MongoDB")

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("redis ping succeeded")

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	mailer := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	cartService := s.NewCartService(cartRepo, c.NewRedisCache(redisClient, cfg.CacheTTL), logger)
	authService := s.NewAuthService(userRepo, tokens, mailer, cfg.BaseURL, logger)

	router := apphttp.NewRouter(apphttp.RouterConfig{
		Cart:     apphttp.NewCartHandler(cartService, cfg.RequestTimeout),
		Products: apphttp.NewProductHandler(productRepo, cfg.RequestTimeout),
		Auth:     apphttp.NewAuthHandler(authService, cfg.RequestTimeout),
		Tokens:   tokens,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: otelhttp.NewHandler(router, "storefront"),
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Msg("storefront API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down storefront API...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect failed")
	}
	logger.Info().Msg("storefront API stopped")
}
