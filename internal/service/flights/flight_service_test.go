package flights

import (
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service *FlightService
	morning *domain.Flight
	evening *domain.Flight
	london  *domain.Flight
}

func mustFlight(t *testing.T, number, dest string, dep time.Time, seats int) *domain.Flight {
	t.Helper()
	f, err := domain.NewFlight(number, dest, dep, seats)
	require.NoError(t, err)
	return f
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fx := fixture{
		service: NewFlightService(),
		morning: mustFlight(t, "FL100", "New York", time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC), 10),
		evening: mustFlight(t, "FL101", "New York", time.Date(2025, 12, 20, 15, 30, 0, 0, time.UTC), 5),
		london:  mustFlight(t, "FL200", "London", time.Date(2025, 12, 21, 11, 0, 0, 0, time.UTC), 8),
	}
	require.NoError(t, fx.service.AddFlight(fx.morning))
	require.NoError(t, fx.service.AddFlight(fx.evening))
	require.NoError(t, fx.service.AddFlight(fx.london))
	return fx
}

func searchDay() time.Time {
	return time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
}

func TestFlightService_AddFlight_Nil(t *testing.T) {
	s := NewFlightService()
	assert.ErrorIs(t, s.AddFlight(nil), domain.ErrInvalidArgument)
	assert.Equal(t, 0, s.AllFlights().Len())
}

func TestFlightService_AddFlight_AcceptsDuplicateNumbers(t *testing.T) {
	fx := newFixture(t)
	dup := mustFlight(t, "FL100", "Paris", searchDay(), 3)

	require.NoError(t, fx.service.AddFlight(dup))

	assert.Equal(t, 4, fx.service.AllFlights().Len())
	first, ok := fx.service.FlightByNumber("FL100")
	assert.True(t, ok)
	assert.Same(t, fx.morning, first)

	_, err := fx.service.BookFlight("Alice", dup, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, dup.AvailableSeats())
	assert.Equal(t, 10, fx.morning.AvailableSeats())
}

func TestFlightService_AllFlights_IsLiveView(t *testing.T) {
	fx := newFixture(t)
	view := fx.service.AllFlights()
	assert.Equal(t, 3, view.Len())

	extra := mustFlight(t, "FL300", "California", searchDay(), 12)
	require.NoError(t, fx.service.AddFlight(extra))

	assert.Equal(t, 4, view.Len())
	assert.Same(t, extra, view.At(3))

	snapshot := view.Slice()
	snapshot[0] = nil
	assert.Same(t, fx.morning, view.At(0))
}

func TestFlightService_AllReservations_IsLiveView(t *testing.T) {
	fx := newFixture(t)
	view := fx.service.AllReservations()
	assert.Equal(t, 0, view.Len())

	r, err := fx.service.BookFlight("Alice", fx.morning, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, view.Len())
	assert.Same(t, r, view.At(0))
	assert.True(t, view.Contains(r))
}

func TestFlightService_SearchFlights_ByDestinationAndDate(t *testing.T) {
	fx := newFixture(t)

	results, err := fx.service.SearchFlights("New York", searchDay())

	require.NoError(t, err)
	assert.Equal(t, []*domain.Flight{fx.morning, fx.evening}, results)
}

func TestFlightService_SearchFlights_CaseInsensitiveAndTrimmed(t *testing.T) {
	fx := newFixture(t)

	results, err := fx.service.SearchFlights("  new york ", searchDay())

	require.NoError(t, err)
	assert.Equal(t, []*domain.Flight{fx.morning, fx.evening}, results)
}

func TestFlightService_SearchFlights_IgnoresTimeOfDay(t *testing.T) {
	fx := newFixture(t)

	results, err := fx.service.SearchFlights("New York", time.Date(2025, 12, 20, 22, 45, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFlightService_SearchFlights_NoMatches(t *testing.T) {
	fx := newFixture(t)

	results, err := fx.service.SearchFlights("New York", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFlightService_SearchFlights_ExcludesSoldOut(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.morning.SetAvailableSeats(0))

	results, err := fx.service.SearchFlights("New York", searchDay())

	require.NoError(t, err)
	assert.Equal(t, []*domain.Flight{fx.evening}, results)
}

func TestFlightService_SearchFlights_InvalidInput(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.SearchFlights("   ", searchDay())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = fx.service.SearchFlights("New York", time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestFlightService_BookFlight_Success(t *testing.T) {
	fx := newFixture(t)

	r, err := fx.service.BookFlight("Alice", fx.morning, 3)

	require.NoError(t, err)
	assert.Equal(t, "Alice", r.CustomerName())
	assert.Same(t, fx.morning, r.Flight())
	assert.Equal(t, 3, r.SeatsBooked())
	assert.Equal(t, 7, fx.morning.AvailableSeats())

	all := fx.service.AllReservations().Slice()
	require.Len(t, all, 1)
	assert.Same(t, r, all[0])
}

func TestFlightService_BookFlight_NotEnoughSeats(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.service.BookFlight("Alice", fx.morning, 3)
	require.NoError(t, err)

	_, err = fx.service.BookFlight("Bob", fx.morning, 20)

	assert.ErrorIs(t, err, domain.ErrNotEnoughSeats)
	assert.Contains(t, err.Error(), "not enough seats")
	assert.Equal(t, 7, fx.morning.AvailableSeats())
	assert.Equal(t, 1, fx.service.AllReservations().Len())
}

func TestFlightService_BookFlight_ExactCapacity(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.BookFlight("Alice", fx.evening, 5)

	require.NoError(t, err)
	assert.Equal(t, 0, fx.evening.AvailableSeats())

	results, err := fx.service.SearchFlights("New York", searchDay())
	require.NoError(t, err)
	assert.Equal(t, []*domain.Flight{fx.morning}, results)
}

func TestFlightService_BookFlight_ValidationOrder(t *testing.T) {
	fx := newFixture(t)
	stranger := mustFlight(t, "XX999", "New York", searchDay(), 5)

	testCases := []struct {
		name     string
		customer string
		flight   *domain.Flight
		seats    int
		contains string
	}{
		{name: "blank customer wins over everything", customer: " ", flight: nil, seats: 0, contains: "customer name"},
		{name: "nil flight before seats", customer: "Alice", flight: nil, seats: 0, contains: "flight must not be nil"},
		{name: "zero seats", customer: "Alice", flight: fx.morning, seats: 0, contains: "seats must be > 0"},
		{name: "negative seats", customer: "Alice", flight: fx.morning, seats: -1, contains: "seats must be > 0"},
		{name: "seats checked before membership", customer: "Alice", flight: stranger, seats: 0, contains: "seats must be > 0"},
		{name: "membership before capacity", customer: "Alice", flight: stranger, seats: 100, contains: "not managed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := fx.service.BookFlight(tc.customer, tc.flight, tc.seats)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
	assert.Equal(t, 10, fx.morning.AvailableSeats())
	assert.Equal(t, 0, fx.service.AllReservations().Len())
}

func TestFlightService_BookFlight_LookalikeNotManaged(t *testing.T) {
	fx := newFixture(t)
	lookalike := mustFlight(t, "FL100", "New York", time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC), 10)

	_, err := fx.service.BookFlight("Alice", lookalike, 1)

	assert.ErrorIs(t, err, domain.ErrFlightNotManaged)
	assert.Equal(t, 10, lookalike.AvailableSeats())
	assert.Equal(t, 10, fx.morning.AvailableSeats())
}

func TestFlightService_BookFlight_ConcurrentNeverOversells(t *testing.T) {
	fx := newFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	booked := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fx.service.BookFlight("Crowd", fx.evening, 1); err == nil {
				mu.Lock()
				booked++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, booked)
	assert.Equal(t, 0, fx.evening.AvailableSeats())
	assert.Equal(t, 5, fx.service.AllReservations().Len())
}

func TestFlightService_FindReservationsByCustomer(t *testing.T) {
	fx := newFixture(t)
	first, err := fx.service.BookFlight("Charlie", fx.morning, 2)
	require.NoError(t, err)
	second, err := fx.service.BookFlight("  charlie ", fx.evening, 1)
	require.NoError(t, err)
	_, err = fx.service.BookFlight("Dana", fx.evening, 1)
	require.NoError(t, err)

	found, err := fx.service.FindReservationsByCustomer("CHARLIE")

	require.NoError(t, err)
	assert.Equal(t, []*domain.Reservation{first, second}, found)
}

func TestFlightService_FindReservationsByCustomer_NoMatch(t *testing.T) {
	fx := newFixture(t)

	found, err := fx.service.FindReservationsByCustomer("Nobody")

	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestFlightService_FindReservationsByCustomer_Blank(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.FindReservationsByCustomer("  ")

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
