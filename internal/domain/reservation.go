package domain

import (
	"fmt"
	"strings"
	"time"
)

// Reservation binds a customer to a number of seats on one flight. It is
// never modified after creation.
type Reservation struct {
	customerName string
	flight       *Flight
	seatsBooked  int
}

type ReservationSnapshot struct {
	CustomerName  string    `json:"customer_name"`
	FlightNumber  string    `json:"flight_number"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	SeatsBooked   int       `json:"seats_booked"`
}

func NewReservation(customerName string, flight *Flight, seatsBooked int) (*Reservation, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, invalid("customer name must not be blank")
	}
	if flight == nil {
		return nil, invalid("flight must not be nil")
	}
	if seatsBooked <= 0 {
		return nil, invalid("seats booked must be > 0")
	}
	return &Reservation{customerName: customerName, flight: flight, seatsBooked: seatsBooked}, nil
}

func (r *Reservation) CustomerName() string { return r.customerName }
func (r *Reservation) Flight() *Flight      { return r.flight }
func (r *Reservation) SeatsBooked() int     { return r.seatsBooked }

// Equal compares customer name, flight number and seat count.
func (r *Reservation) Equal(other *Reservation) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.customerName == other.customerName &&
		r.seatsBooked == other.seatsBooked &&
		r.flight.Equal(other.flight)
}

func (r *Reservation) Snapshot() ReservationSnapshot {
	return ReservationSnapshot{
		CustomerName:  r.customerName,
		FlightNumber:  r.flight.FlightNumber(),
		Destination:   r.flight.Destination(),
		DepartureTime: r.flight.DepartureTime(),
		SeatsBooked:   r.seatsBooked,
	}
}

func (r *Reservation) String() string {
	return fmt.Sprintf("Reservation{customerName=%q, flightNumber=%q, destination=%q, departureTime=%s, seatsBooked=%d}",
		r.customerName, r.flight.FlightNumber(), r.flight.Destination(),
		r.flight.DepartureTime().Format(DateTimeLayout), r.seatsBooked)
}
