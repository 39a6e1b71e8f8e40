package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/cart-store/internal/config"
	"github.com/example/cart-store/internal/infrastructure/kafka"
	"github.com/example/cart-store/internal/notification"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.RelayFromEnv()
	if err != nil {
		log.Fatalf("[Notifier] %v", err)
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Cart Store - Notification Relay")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.Brokers)
	log.Printf("[Notifier] Topic: %s", cfg.Topic)
	log.Printf("[Notifier] Group: %s", cfg.GroupID)

	handler := notification.NewHandler(notification.LogNotifier{})

	consumer := kafka.NewConsumer(cfg.Brokers, cfg.Topic, cfg.GroupID)
	defer consumer.Close()

	go func() {
		log.Println("[Notifier] Starting consumer...")
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
			log.Printf("[Notifier] Consumer error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}
