package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightreservation/config"
	"github.com/Domenick1991/flightreservation/internal/console"
	"github.com/Domenick1991/flightreservation/internal/seed"
	"github.com/Domenick1991/flightreservation/internal/service/booking"
	"github.com/Domenick1991/flightreservation/internal/service/flights"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core := flights.NewFlightService()
	if err := seed.Load(core, cfg.Catalog.Flights, time.Local); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	app := console.New(booking.NewBookingService(core), os.Stdin, os.Stdout, time.Local)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("console: %v", err)
	}
}
