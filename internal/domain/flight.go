package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DateTimeLayout is the layout flights are printed and entered with.
const DateTimeLayout = "2006-01-02 15:04"

// Flight is a scheduled service to a destination. Everything but the seat
// count is fixed at construction.
type Flight struct {
	flightNumber  string
	destination   string
	departureTime time.Time

	mu             sync.RWMutex
	availableSeats int
}

// FlightSnapshot is a point-in-time copy of a flight used for JSON output
// and caching.
type FlightSnapshot struct {
	FlightNumber   string    `json:"flight_number"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	AvailableSeats int       `json:"available_seats"`
}

func NewFlight(flightNumber, destination string, departureTime time.Time, availableSeats int) (*Flight, error) {
	if strings.TrimSpace(flightNumber) == "" {
		return nil, invalid("flight number must not be blank")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, invalid("destination must not be blank")
	}
	if departureTime.IsZero() {
		return nil, invalid("departure time is required")
	}
	if availableSeats < 0 {
		return nil, invalid("available seats must be >= 0")
	}

	return &Flight{
		flightNumber:   flightNumber,
		destination:    destination,
		departureTime:  departureTime,
		availableSeats: availableSeats,
	}, nil
}

func (f *Flight) FlightNumber() string     { return f.flightNumber }
func (f *Flight) Destination() string      { return f.destination }
func (f *Flight) DepartureTime() time.Time { return f.departureTime }

func (f *Flight) AvailableSeats() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.availableSeats
}

// SetAvailableSeats overwrites the seat count. A negative value is rejected
// and the previous count is kept.
func (f *Flight) SetAvailableSeats(seats int) error {
	if seats < 0 {
		return invalid("available seats must be >= 0")
	}
	f.mu.Lock()
	f.availableSeats = seats
	f.mu.Unlock()
	return nil
}

// TakeSeats decrements the seat count by n if at least n seats are left.
// On failure the count is unchanged.
func (f *Flight) TakeSeats(n int) error {
	if n <= 0 {
		return invalid("seats must be > 0")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > f.availableSeats {
		return fmt.Errorf("%w. Requested: %d, Available: %d", ErrNotEnoughSeats, n, f.availableSeats)
	}
	f.availableSeats -= n
	return nil
}

// DepartsOn reports whether the flight leaves on the calendar day of t,
// ignoring time of day.
func (f *Flight) DepartsOn(t time.Time) bool {
	y1, m1, d1 := f.departureTime.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Equal reports whether both flights carry the same flight number.
func (f *Flight) Equal(other *Flight) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.flightNumber == other.flightNumber
}

func (f *Flight) Snapshot() FlightSnapshot {
	return FlightSnapshot{
		FlightNumber:   f.flightNumber,
		Destination:    f.destination,
		DepartureTime:  f.departureTime,
		AvailableSeats: f.AvailableSeats(),
	}
}

func (f *Flight) String() string {
	return fmt.Sprintf("Flight{flightNumber=%q, destination=%q, departureTime=%s, availableSeats=%d}",
		f.flightNumber, f.destination, f.departureTime.Format(DateTimeLayout), f.AvailableSeats())
}
