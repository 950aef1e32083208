package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/catalog"
	"github.com/moodmate/companion/internal/config"
	"github.com/moodmate/companion/internal/handler"
	chatHandler "github.com/moodmate/companion/internal/handler/chat"
	"github.com/moodmate/companion/internal/integrations/paramstore"
	"github.com/moodmate/companion/internal/logging"
	"github.com/moodmate/companion/internal/service/avatar"
	"github.com/moodmate/companion/internal/service/chat"
	"github.com/moodmate/companion/internal/service/checkin"
	"github.com/moodmate/companion/internal/service/journal"
	"github.com/moodmate/companion/internal/service/mood"
	"github.com/moodmate/companion/internal/service/quiz"
	"github.com/moodmate/companion/internal/service/suggestion"
	"github.com/moodmate/companion/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file loaded, continuing with system environment variables only", zap.Error(envErr))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := resolveDatabaseSecret(ctx, &cfg.Storage, logger); err != nil {
		return err
	}

	repo, err := storage.Open(ctx, storageOptions(cfg.Storage), logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	moodSvc := mood.NewService(repo, logger)
	chatSvc, err := chat.NewService(ctx, cat.Chat, cfg.Timing.ChatReplyDelay, logger)
	if err != nil {
		return fmt.Errorf("build chat service: %w", err)
	}

	router := handler.NewRouter(handler.Services{
		Mood:        moodSvc,
		Chat:        chatSvc,
		Journal:     journal.NewService(cat.Journal, cfg.Timing.JournalAnalysisDelay, logger),
		Quiz:        quiz.NewService(cat.Quiz),
		Checkin:     checkin.NewService(cat, moodSvc),
		Avatar:      avatar.NewService(cat.Avatar),
		Suggestions: suggestion.NewService(cat.Suggestions),
	}, handler.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Chat: chatHandler.Options{
			EmotionSampleInterval: cfg.Timing.EmotionSampleInterval,
			BannerTTL:             cfg.Timing.BannerTTL,
		},
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("MoodMate backend listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", cfg.Storage.Driver),
	)
	return runServer(ctx, srv)
}

func storageOptions(cfg config.StorageConfig) storage.Options {
	return storage.Options{
		Driver:          cfg.Driver,
		FilePath:        cfg.FilePath,
		DatabaseURL:     cfg.DatabaseURL,
		SQLitePath:      cfg.SQLitePath,
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
		DynamoDBTable:   cfg.DynamoDBTable,
	}
}

// resolveDatabaseSecret replaces the connection string with the SSM parameter value when one is configured.
func resolveDatabaseSecret(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) error {
	if cfg.DatabaseSecretParam == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	client, err := paramstore.New(ssm.NewFromConfig(awsCfg))
	if err != nil {
		return err
	}
	return applyDatabaseSecret(ctx, cfg, client, logger)
}

func applyDatabaseSecret(ctx context.Context, cfg *config.StorageConfig, getter paramstore.Getter, logger *zap.Logger) error {
	switch cfg.Driver {
	case storage.DriverPostgres:
		value, err := paramstore.ResolveSecret(ctx, getter, cfg.DatabaseSecretParam, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("resolve database secret: %w", err)
		}
		cfg.DatabaseURL = value
	case storage.DriverMongo:
		value, err := paramstore.ResolveSecret(ctx, getter, cfg.DatabaseSecretParam, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("resolve database secret: %w", err)
		}
		cfg.MongoURI = value
	default:
		logger.Warn("DATABASE_SECRET_PARAM ignored for storage driver", zap.String("driver", cfg.Driver))
		return nil
	}

	logger.Info("database connection string loaded from parameter store", zap.String("parameter", cfg.DatabaseSecretParam))
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
