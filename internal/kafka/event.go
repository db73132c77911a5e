package kafka

import (
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/google/uuid"
)

const EventReservationCreated = "reservation_created"

type ReservationEvent struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	CustomerName   string    `json:"customer_name"`
	FlightNumber   string    `json:"flight_number"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	SeatsBooked    int       `json:"seats_booked"`
	SeatsRemaining int       `json:"seats_remaining"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewReservationEvent(eventType string, r *domain.Reservation) ReservationEvent {
	f := r.Flight()
	return ReservationEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		CustomerName:   r.CustomerName(),
		FlightNumber:   f.FlightNumber(),
		Destination:    f.Destination(),
		DepartureTime:  f.DepartureTime(),
		SeatsBooked:    r.SeatsBooked(),
		SeatsRemaining: f.AvailableSeats(),
		OccurredAt:     time.Now().UTC(),
	}
}
