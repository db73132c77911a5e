package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/kafka"
	"github.com/Domenick1991/flightreservation/internal/service/flights"
)

type FlightUseCase interface {
	ListFlights(ctx context.Context) ([]domain.FlightSnapshot, error)
	GetFlight(ctx context.Context, flightNumber string) (*domain.Flight, error)
	SearchFlights(ctx context.Context, destination string, date time.Time) ([]*domain.Flight, error)
	AddFlight(ctx context.Context, input AddFlightInput) (*domain.Flight, error)
}

type BookingUseCase interface {
	BookFlight(ctx context.Context, customerName string, flight *domain.Flight, seats int) (*domain.Reservation, error)
	BookFlightByNumber(ctx context.Context, input BookFlightInput) (*domain.Reservation, error)
	FindReservations(ctx context.Context, customerName string) ([]*domain.Reservation, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.FlightSnapshot, error)
	SetFlights(ctx context.Context, flights []domain.FlightSnapshot) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AddFlightInput struct {
	FlightNumber   string
	Destination    string
	DepartureTime  time.Time
	AvailableSeats int
}

type BookFlightInput struct {
	CustomerName string
	FlightNumber string
	Seats        int
}

// BookingService exposes the flight service to the console and HTTP
// adapters. Cache and producer are optional; a nil one is skipped.
type BookingService struct {
	flights            *flights.FlightService
	cache              Cache
	producer           Producer
	reservationTopic   string
	notificationsTopic string

	// catalogVersion counts invalidations so ListFlights can tell that the
	// snapshot it just cached was already stale.
	catalogVersion atomic.Uint64
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, reservationTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.reservationTopic = reservationTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(core *flights.FlightService, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{flights: core}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ListFlights(ctx context.Context) ([]domain.FlightSnapshot, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			log.Printf("flights cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	version := s.catalogVersion.Load()
	all := s.flights.AllFlights().Slice()
	snapshots := make([]domain.FlightSnapshot, 0, len(all))
	for _, f := range all {
		snapshots = append(snapshots, f.Snapshot())
	}

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, snapshots); err != nil {
			log.Printf("flights cache write failed: %v", err)
		} else if s.catalogVersion.Load() != version {
			s.dropCachedFlights(ctx)
		}
	}
	return snapshots, nil
}

func (s *BookingService) GetFlight(_ context.Context, flightNumber string) (*domain.Flight, error) {
	number := strings.TrimSpace(flightNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: flight number must not be blank", domain.ErrInvalidArgument)
	}
	f, ok := s.flights.FlightByNumber(number)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlightNotFound, number)
	}
	return f, nil
}

func (s *BookingService) SearchFlights(_ context.Context, destination string, date time.Time) ([]*domain.Flight, error) {
	return s.flights.SearchFlights(destination, date)
}

func (s *BookingService) AddFlight(ctx context.Context, input AddFlightInput) (*domain.Flight, error) {
	f, err := domain.NewFlight(input.FlightNumber, input.Destination, input.DepartureTime, input.AvailableSeats)
	if err != nil {
		return nil, err
	}
	if err := s.flights.AddFlight(f); err != nil {
		return nil, err
	}
	s.invalidateFlights(ctx)
	return f, nil
}

func (s *BookingService) BookFlight(ctx context.Context, customerName string, flight *domain.Flight, seats int) (*domain.Reservation, error) {
	reservation, err := s.flights.BookFlight(customerName, flight, seats)
	if err != nil {
		return nil, err
	}

	log.Printf("booked %d seat(s) on %s for %q", seats, flight.FlightNumber(), customerName)
	s.invalidateFlights(ctx)
	if err := s.publish(ctx, kafka.EventReservationCreated, reservation); err != nil {
		log.Printf("WARNING: failed to publish %s for flight %s: %v", kafka.EventReservationCreated, flight.FlightNumber(), err)
	}
	return reservation, nil
}

func (s *BookingService) BookFlightByNumber(ctx context.Context, input BookFlightInput) (*domain.Reservation, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name must not be blank", domain.ErrInvalidArgument)
	}
	f, err := s.GetFlight(ctx, input.FlightNumber)
	if err != nil {
		return nil, err
	}
	return s.BookFlight(ctx, input.CustomerName, f, input.Seats)
}

func (s *BookingService) FindReservations(_ context.Context, customerName string) ([]*domain.Reservation, error) {
	return s.flights.FindReservationsByCustomer(customerName)
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.catalogVersion.Add(1)
	s.dropCachedFlights(ctx)
}

func (s *BookingService) dropCachedFlights(ctx context.Context) {
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("flights cache invalidation failed: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, reservation *domain.Reservation) error {
	if s.producer == nil || s.reservationTopic == "" {
		return nil
	}
	event := kafka.NewReservationEvent(eventType, reservation)
	key := reservation.Flight().FlightNumber()
	if err := s.producer.Publish(ctx, s.reservationTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var (
	_ FlightUseCase  = (*BookingService)(nil)
	_ BookingUseCase = (*BookingService)(nil)
)
