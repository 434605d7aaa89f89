package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/watchhaven/internal/config"
	"github.com/example/watchhaven/internal/email"
	"github.com/example/watchhaven/internal/infrastructure/kafka"
	"github.com/example/watchhaven/internal/infrastructure/kv"
	"github.com/example/watchhaven/internal/logging"
	"github.com/example/watchhaven/internal/newsletter"
	"github.com/example/watchhaven/internal/notification"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Notifier] Failed to load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if cfg.Store.Backend == "memory" {
		log.Fatal("[Notifier] store.backend must be redis or postgres to share subscribers with the API")
	}

	log.Info("[Notifier] ========================================")
	log.Info("[Notifier] WatchHaven - New Arrival Notifier")
	log.Info("[Notifier] ========================================")
	log.Infof("[Notifier] Kafka: %v", cfg.Kafka.Brokers)
	log.Infof("[Notifier] Topic: %s", cfg.Kafka.Topic)
	log.Infof("[Notifier] Group: %s", cfg.Kafka.ConsumerGroup)
	log.Infof("[Notifier] SMTP: %s:%s", cfg.SMTP.Host, cfg.SMTP.Port)
	log.Infof("[Notifier] From: %s", cfg.SMTP.From)

	// Subscribers live in the shared flag store
	flags, err := kv.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("[Notifier] Failed to open flag store: %v", err)
	}
	defer flags.Close()
	log.Infof("[Notifier] Connected to %s", cfg.Store.Backend)

	emailSvc := email.NewService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	handler := notification.NewHandler(emailSvc, newsletter.NewService(flags, cfg.Newsletter.PopupDelay))

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ConsumerGroup)
	defer consumer.Close()

	go func() {
		log.Infof("[Notifier] Listening to topic: %s", cfg.Kafka.Topic)
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
			log.Errorf("[Notifier] Consumer error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("[Notifier] Shutting down...")
	cancel()
}
