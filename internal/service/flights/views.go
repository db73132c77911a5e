package flights

import "github.com/Domenick1991/flightreservation/internal/domain"

// FlightList is a read-only view of the catalog. It reads through to the
// service, so flights added after the view was taken are visible.
type FlightList struct {
	s *FlightService
}

func (l FlightList) Len() int {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return len(l.s.flights)
}

func (l FlightList) At(i int) *domain.Flight {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return l.s.flights[i]
}

// Slice copies the current contents; changes to the copy do not reach the
// catalog.
func (l FlightList) Slice() []*domain.Flight {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	out := make([]*domain.Flight, len(l.s.flights))
	copy(out, l.s.flights)
	return out
}

// Contains uses flight number equality.
func (l FlightList) Contains(f *domain.Flight) bool {
	for _, candidate := range l.Slice() {
		if candidate.Equal(f) {
			return true
		}
	}
	return false
}

// ReservationList is a read-only view of the reservation log.
type ReservationList struct {
	s *FlightService
}

func (l ReservationList) Len() int {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return len(l.s.reservations)
}

func (l ReservationList) At(i int) *domain.Reservation {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return l.s.reservations[i]
}

func (l ReservationList) Slice() []*domain.Reservation {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	out := make([]*domain.Reservation, len(l.s.reservations))
	copy(out, l.s.reservations)
	return out
}

func (l ReservationList) Contains(r *domain.Reservation) bool {
	for _, candidate := range l.Slice() {
		if candidate.Equal(r) {
			return true
		}
	}
	return false
}
