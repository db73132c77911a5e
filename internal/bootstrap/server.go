package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/flightreservation/api"
	"github.com/Domenick1991/flightreservation/config"
	"github.com/Domenick1991/flightreservation/docs"
	"github.com/Domenick1991/flightreservation/internal/service/booking"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Service is what the HTTP surface needs from the booking layer.
type Service interface {
	booking.FlightUseCase
	booking.BookingUseCase
}

// Run serves the HTTP API and blocks until ctx is cancelled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, svc Service) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(svc, time.Local),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", cfg.HTTP.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		timeout := time.Duration(cfg.HTTP.ShutdownSeconds) * time.Second
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter builds the gin engine: the JSON API under /api/v1, swagger UI
// under /docs and a health check.
func NewRouter(svc Service, loc *time.Location) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewFlightHandler(svc, loc).Register(v1.Group("/flights"))
	api.NewBookingHandler(svc).Register(v1.Group("/reservations"))

	router.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	return router
}
