package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightreservation/config"
	"github.com/Domenick1991/flightreservation/internal/email"
	"github.com/Domenick1991/flightreservation/internal/kafka"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		log.Fatalf("worker needs kafka.brokers and kafka.notifications_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	log.Printf("consuming %s as %s", cfg.Kafka.NotificationsTopic, cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.ReservationEvent) error {
		if err := sender.SendWithRetry(ctx, event, cfg.Worker.MaxRetries, cfg.Worker.RetryBackoff); err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.Printf("dropping notification: %v", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("consumer stopped: %v", err)
	}
	log.Println("worker stopped")
}
