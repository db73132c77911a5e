package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightreservation/config"
	"github.com/Domenick1991/flightreservation/internal/bootstrap"
	"github.com/Domenick1991/flightreservation/internal/cache"
	"github.com/Domenick1991/flightreservation/internal/kafka"
	"github.com/Domenick1991/flightreservation/internal/seed"
	"github.com/Domenick1991/flightreservation/internal/service/booking"
	"github.com/Domenick1991/flightreservation/internal/service/flights"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core := flights.NewFlightService()
	if err := seed.Load(core, cfg.Catalog.Flights, time.Local); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	log.Printf("catalog loaded with %d flights", core.AllFlights().Len())

	var opts []booking.BookingServiceOption
	if cfg.Redis.Addr != "" {
		opts = append(opts, booking.WithCache(cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.FlightsCacheTTL)*time.Second)))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts,
			booking.WithProducer(producer, cfg.Kafka.ReservationTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	bookingService := booking.NewBookingService(core, opts...)

	if err := bootstrap.Run(ctx, cfg, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}
