// Command subscription-log consumes mailing-list subscription events from
// RabbitMQ and appends them to a log file for auditing.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/config"
	"github.com/iliyamo/azulu-crm/internal/logger"
	"github.com/iliyamo/azulu-crm/internal/queue"
)

func main() {
	cfg, err := config.LoadConsumerConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: cfg.AMQPURL, LogDir: cfg.LogDir, Log: zl}
	zl.Info("subscription-log started", zap.String("queue", queue.SubscriptionQueue), zap.String("dir", cfg.LogDir))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("subscription-log stopped", zap.Error(err))
	}
	zl.Info("subscription-log stopped")
}
