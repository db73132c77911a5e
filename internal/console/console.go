// Package console is the interactive text front end: a numbered menu read
// line by line from an input stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
)

const dateLayout = "2006-01-02"

type Service interface {
	ListFlights(ctx context.Context) ([]domain.FlightSnapshot, error)
	SearchFlights(ctx context.Context, destination string, date time.Time) ([]*domain.Flight, error)
	BookFlight(ctx context.Context, customerName string, flight *domain.Flight, seats int) (*domain.Reservation, error)
	FindReservations(ctx context.Context, customerName string) ([]*domain.Reservation, error)
}

// errInputClosed ends the loop when the input runs out mid-dialog.
var errInputClosed = errors.New("input closed")

type Console struct {
	service Service
	in      *bufio.Scanner
	out     io.Writer
	loc     *time.Location

	lines   chan string
	stop    chan struct{}
	scanErr error
}

func New(service Service, in io.Reader, out io.Writer, loc *time.Location) *Console {
	if loc == nil {
		loc = time.Local
	}
	return &Console{service: service, in: bufio.NewScanner(in), out: out, loc: loc}
}

// Run prints the catalog and serves the menu until the user exits, the
// input ends or ctx is cancelled. Service errors are shown and the loop
// carries on.
func (c *Console) Run(ctx context.Context) error {
	if err := c.printCatalog(ctx); err != nil {
		return err
	}

	c.startReader()
	defer close(c.stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printMenu()
		choice, err := c.readLine(ctx)
		if err != nil {
			return c.closed(err)
		}

		switch choice {
		case "1":
			err = c.searchFlights(ctx)
		case "2":
			err = c.bookFlight(ctx)
		case "3":
			err = c.viewReservations(ctx)
		case "4":
			c.println("Exiting application. Goodbye!")
			return nil
		default:
			c.println("Invalid option. Please try again.")
		}
		if err != nil {
			return c.closed(err)
		}
	}
}

func (c *Console) printCatalog(ctx context.Context) error {
	catalog, err := c.service.ListFlights(ctx)
	if err != nil {
		return fmt.Errorf("list flights: %w", err)
	}
	c.println("Sample flights loaded:")
	for _, f := range catalog {
		c.printf(" - %s %s at %s (Seats: %d)\n", f.FlightNumber, f.Destination, f.DepartureTime.Format(domain.DateTimeLayout), f.AvailableSeats)
	}
	c.println("")
	return nil
}

func (c *Console) printMenu() {
	c.println("")
	c.println("=== Flight Reservation System ===")
	c.println("1. Search flights by destination and date")
	c.println("2. Book a flight")
	c.println("3. View my reservations")
	c.println("4. Exit")
	c.printf("Enter your choice: ")
}

func (c *Console) searchFlights(ctx context.Context) error {
	destination, err := c.prompt(ctx, "Enter your destination: ")
	if err != nil {
		return err
	}
	dateStr, err := c.prompt(ctx, "Enter departure date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}

	found, err := c.search(ctx, destination, dateStr)
	if err != nil {
		c.printf("Error while searching flights: %v\n", err)
		return nil
	}
	if len(found) == 0 {
		c.println("No available flights found for that destination and date.")
		return nil
	}
	c.println("--> Available flights:")
	c.printFlights(found)
	return nil
}

func (c *Console) bookFlight(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter your name: ")
	if err != nil {
		return err
	}
	destination, err := c.prompt(ctx, "Enter destination: ")
	if err != nil {
		return err
	}
	dateStr, err := c.prompt(ctx, "Enter departure date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}

	found, err := c.search(ctx, destination, dateStr)
	if err != nil {
		c.printf("Error while booking flight: %v\n", err)
		return nil
	}
	if len(found) == 0 {
		c.println("No available flights for that destination and date.")
		return nil
	}

	c.println("Select a flight to book:")
	c.printFlights(found)

	optionStr, err := c.prompt(ctx, "Enter option number: ")
	if err != nil {
		return err
	}
	option, err := strconv.Atoi(optionStr)
	if err != nil {
		c.printf("Error while booking flight: invalid number %q\n", optionStr)
		return nil
	}
	if option < 1 || option > len(found) {
		c.println("Invalid option.")
		return nil
	}

	seatsStr, err := c.prompt(ctx, "Enter number of seats to book: ")
	if err != nil {
		return err
	}
	seats, err := strconv.Atoi(seatsStr)
	if err != nil {
		c.printf("Error while booking flight: invalid number %q\n", seatsStr)
		return nil
	}

	reservation, err := c.service.BookFlight(ctx, name, found[option-1], seats)
	if err != nil {
		c.printf("Error while booking flight: %v\n", err)
		return nil
	}
	c.printf("--> Booking successful: %s\n", reservation)
	return nil
}

func (c *Console) viewReservations(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter your name: ")
	if err != nil {
		return err
	}

	reservations, err := c.service.FindReservations(ctx, name)
	if err != nil {
		c.printf("Error while retrieving reservations: %v\n", err)
		return nil
	}
	if len(reservations) == 0 {
		c.printf("No reservations found for %s.\n", name)
		return nil
	}
	c.printf("Reservations for %s:\n", name)
	for _, r := range reservations {
		c.println(r.String())
	}
	return nil
}

func (c *Console) search(ctx context.Context, destination, dateStr string) ([]*domain.Flight, error) {
	date, err := time.ParseInLocation(dateLayout, dateStr, c.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", dateStr)
	}
	return c.service.SearchFlights(ctx, destination, date)
}

func (c *Console) printFlights(found []*domain.Flight) {
	for i, f := range found {
		c.printf("%d) %s - %s at %s (Seats: %d)\n", i+1, f.FlightNumber(), f.Destination(),
			f.DepartureTime().In(c.loc).Format(domain.DateTimeLayout), f.AvailableSeats())
	}
}

func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	c.printf("%s", label)
	return c.readLine(ctx)
}

// startReader scans the input on its own goroutine so a pending read never
// outlives ctx. A goroutine stuck in Scan is left behind when Run returns.
func (c *Console) startReader() {
	c.lines = make(chan string)
	c.stop = make(chan struct{})
	go func() {
		defer close(c.lines)
		for c.in.Scan() {
			select {
			case c.lines <- c.in.Text():
			case <-c.stop:
				return
			}
		}
		c.scanErr = c.in.Err()
	}()
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.scanErr != nil {
				return "", c.scanErr
			}
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Console) closed(err error) error {
	if errors.Is(err, errInputClosed) {
		c.println("")
		return nil
	}
	return err
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
