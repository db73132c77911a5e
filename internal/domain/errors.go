package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every validation failure raised by the
// entities and the flight service.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrFlightNotManaged = fmt.Errorf("%w: flight is not managed by this service", ErrInvalidArgument)
	ErrNotEnoughSeats   = fmt.Errorf("%w: not enough seats available", ErrInvalidArgument)
)

// ErrFlightNotFound is returned by lookups by flight number.
var ErrFlightNotFound = errors.New("flight not found")

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}
