package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tunewave/tunewave/internal/handlers"
	"github.com/tunewave/tunewave/internal/repository"
	"github.com/tunewave/tunewave/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	blobs, err := newBlobRepository(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up blob store")
	}

	queueClientFactory := func() *redis.Client {
		return redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	services := service.NewServices(service.Deps{
		Users:     repository.NewUserRepository(pool),
		Albums:    repository.NewAlbumRepository(pool),
		Tracks:    repository.NewTrackRepository(pool),
		Genres:    repository.NewGenreRepository(pool),
		Playlists: repository.NewPlaylistRepository(pool),
		Activity:  repository.NewActivityRepository(pool),
		Queue:     repository.NewQueueRepository(queueClientFactory, cfg.QueueTTL),
		Blobs:     blobs,
	}, cfg.TokenSecret, cfg.TokenExpiry, logger)

	e := setupEcho(logger)
	handlers.NewHandlers(services, cfg.AdminBootstrap).RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Str("port", cfg.ServerPort).Msg("server started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupEcho(logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()

	// Middleware
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request")
			return nil
		},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	return e
}

func newBlobRepository(ctx context.Context, cfg *Config) (*repository.S3BlobRepository, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		// minio and other S3-compatible stores route by path, not vhost.
		o.UsePathStyle = true
	})

	blobs := repository.NewBlobRepository(client, cfg.MusicBucket, cfg.CoverBucket)
	if err := blobs.EnsureBuckets(ctx); err != nil {
		return nil, err
	}
	return blobs, nil
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}
