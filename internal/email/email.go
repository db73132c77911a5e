package email

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/kafka"
)

// Sender delivers reservation confirmations. Delivery is a formatted notice
// written to out.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func NewSenderTo(out io.Writer) *Sender {
	return &Sender{out: out}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, "notify %s: %s, %d seat(s) on %s to %s departing %s (%d left)\n",
		event.CustomerName, event.Type, event.SeatsBooked, event.FlightNumber, event.Destination,
		event.DepartureTime.Format(domain.DateTimeLayout), event.SeatsRemaining)
	return err
}

// SendWithRetry tries Send up to attempts times, waiting backoff after the
// first failure and doubling it after each further one. It returns the last
// error, or ctx's error if ctx ends while waiting.
func (s *Sender) SendWithRetry(ctx context.Context, event kafka.ReservationEvent, attempts int, backoff time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = s.Send(ctx, event); err == nil {
			return nil
		}
		log.Printf("send notification %s attempt %d failed: %v", event.EventID, i+1, err)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("send notification %s: %w", event.EventID, err)
}
