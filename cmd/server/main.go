package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/config"
	"github.com/iliyamo/azulu-crm/internal/database"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/handler"
	"github.com/iliyamo/azulu-crm/internal/logger"
	"github.com/iliyamo/azulu-crm/internal/media"
	"github.com/iliyamo/azulu-crm/internal/middleware"
	"github.com/iliyamo/azulu-crm/internal/queue"
	"github.com/iliyamo/azulu-crm/internal/repository"
	"github.com/iliyamo/azulu-crm/internal/retry"
	"github.com/iliyamo/azulu-crm/internal/router"
	"github.com/iliyamo/azulu-crm/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg.DB)
	if err != nil {
		zl.Fatal("failed to connect to MySQL", zap.String("host", cfg.DB.Host), zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			zl.Fatal("failed to create tables", zap.Error(err))
		}
	}

	opts := service.Options{
		Retrier: retry.New(&retry.Config{
			MaxRetries:      cfg.DB.MaxRetries,
			InitialInterval: cfg.DB.RetryInitial,
			MaxInterval:     cfg.DB.RetryMax,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		}),
		Logger: zl,
	}

	publisher := queue.NewPublisher(cfg.AMQPURL)
	if cfg.AMQPURL == "" {
		zl.Info("RABBITMQ_URL not set; subscription events are not published")
	}

	uploader, err := media.New(cfg.Cloudinary)
	if err != nil {
		zl.Fatal("failed to configure cloudinary", zap.Error(err))
	}
	if !cfg.Cloudinary.Enabled() {
		zl.Warn("cloudinary credentials missing; media routes answer 503")
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		zl.Warn("redis unavailable; mailing-list rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	h := router.Handlers{
		Events:      handler.NewEventHandler(service.NewEventService(repository.NewEventRepo(db), opts), zl),
		Content:     handler.NewContentHandler(service.NewContentService(repository.NewContentRepo(db), opts), zl),
		Djs:         handler.NewDjHandler(service.NewDjService(repository.NewDjRepo(db), opts), zl),
		MailingList: handler.NewMailingListHandler(service.NewMailingListService(repository.NewMailingListRepo(db), publisher, opts), zl),
		Media:       handler.NewMediaHandler(uploader, zl),
	}
	e := router.New(h, router.Options{
		AdminSecret: cfg.AdminPassword,
		CORSOrigins: cfg.CORSOrigins,
		Validator:   dto.NewValidator(),
		Logger:      zl,
		RateLimit:   middleware.NewTokenBucket(cfg.RateLimit, rdb, zl),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
