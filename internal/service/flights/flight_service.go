package flights

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
)

// FlightService keeps the flight catalog and the reservation log in memory.
// It owns every Flight added to it and is the only place seats are taken
// and reservations are created.
type FlightService struct {
	mu           sync.RWMutex
	flights      []*domain.Flight
	byNumber     map[string][]*domain.Flight
	reservations []*domain.Reservation
}

func NewFlightService() *FlightService {
	return &FlightService{byNumber: make(map[string][]*domain.Flight)}
}

// AddFlight appends f to the catalog. Flights sharing a flight number are
// accepted.
func (s *FlightService) AddFlight(f *domain.Flight) error {
	if f == nil {
		return fmt.Errorf("%w: flight must not be nil", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = append(s.flights, f)
	s.byNumber[f.FlightNumber()] = append(s.byNumber[f.FlightNumber()], f)
	return nil
}

func (s *FlightService) AllFlights() FlightList {
	return FlightList{s: s}
}

func (s *FlightService) AllReservations() ReservationList {
	return ReservationList{s: s}
}

// FlightByNumber returns the first flight added under number.
func (s *FlightService) FlightByNumber(number string) (*domain.Flight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := s.byNumber[number]
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// SearchFlights returns, in catalog order, the flights to destination
// (case-insensitive) departing on the calendar day of date that still have
// seats left.
func (s *FlightService) SearchFlights(destination string, date time.Time) ([]*domain.Flight, error) {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		return nil, fmt.Errorf("%w: destination must not be blank", domain.ErrInvalidArgument)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Flight, 0)
	for _, f := range s.flights {
		if !strings.EqualFold(f.Destination(), dest) {
			continue
		}
		if !f.DepartsOn(date) {
			continue
		}
		if f.AvailableSeats() <= 0 {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

// BookFlight takes seats on flight for customerName and records the
// reservation. Validation runs to completion before anything is mutated, so
// a failed call leaves the seat count and the reservation log untouched.
func (s *FlightService) BookFlight(customerName string, flight *domain.Flight, seats int) (*domain.Reservation, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, fmt.Errorf("%w: customer name must not be blank", domain.ErrInvalidArgument)
	}
	if flight == nil {
		return nil, fmt.Errorf("%w: flight must not be nil", domain.ErrInvalidArgument)
	}
	if seats <= 0 {
		return nil, fmt.Errorf("%w: seats must be > 0", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.manages(flight) {
		return nil, domain.ErrFlightNotManaged
	}

	reservation, err := domain.NewReservation(customerName, flight, seats)
	if err != nil {
		return nil, err
	}
	if err := flight.TakeSeats(seats); err != nil {
		return nil, err
	}
	s.reservations = append(s.reservations, reservation)
	return reservation, nil
}

// FindReservationsByCustomer returns the customer's reservations in booking
// order. Names are compared trimmed and case-folded.
func (s *FlightService) FindReservationsByCustomer(customerName string) ([]*domain.Reservation, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name must not be blank", domain.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if strings.EqualFold(strings.TrimSpace(r.CustomerName()), name) {
			result = append(result, r)
		}
	}
	return result, nil
}

// manages must be called with s.mu held.
func (s *FlightService) manages(f *domain.Flight) bool {
	for _, candidate := range s.byNumber[f.FlightNumber()] {
		if candidate == f {
			return true
		}
	}
	return false
}
