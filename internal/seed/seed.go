package seed

import (
	"fmt"
	"time"

	"github.com/Domenick1991/flightreservation/config"
	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/service/flights"
)

// Load adds every configured flight to the catalog in order. Departures are
// read in loc. The first bad entry aborts loading; flights before it stay.
func Load(catalog *flights.FlightService, entries []config.SeedFlight, loc *time.Location) error {
	for i, e := range entries {
		departure, err := time.ParseInLocation(domain.DateTimeLayout, e.Departure, loc)
		if err != nil {
			return fmt.Errorf("seed flight %d (%s): parse departure: %w", i, e.FlightNumber, err)
		}
		f, err := domain.NewFlight(e.FlightNumber, e.Destination, departure, e.AvailableSeats)
		if err != nil {
			return fmt.Errorf("seed flight %d (%s): %w", i, e.FlightNumber, err)
		}
		if err := catalog.AddFlight(f); err != nil {
			return fmt.Errorf("seed flight %d (%s): %w", i, e.FlightNumber, err)
		}
	}
	return nil
}
