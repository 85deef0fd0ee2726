package seatledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrFlightNotFound is returned when the ledger is asked about a flight
// that does not exist.
var ErrFlightNotFound = errors.New("flight not found")

// OutOfRangeError reports a requested seat that does not exist on the
// airplane serving the flight.
type OutOfRangeError struct {
	Seat   Seat
	Layout Layout
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("seat (%d,%d) is outside the airplane layout: rows 1..%d, seats 1..%d",
		e.Seat.Row, e.Seat.Number, e.Layout.Rows, e.Layout.SeatsPerRow)
}

// DuplicateInBatchError reports a seat requested more than once in a
// single reservation.
type DuplicateInBatchError struct {
	Seat Seat
}

func (e *DuplicateInBatchError) Error() string {
	return fmt.Sprintf("seat (%d,%d) is requested more than once", e.Seat.Row, e.Seat.Number)
}

// SeatAlreadyTakenError reports a seat that already has a ticket on the
// flight. It is also the error a reservation loses a concurrent race with:
// the database rejects the second insert and the loser surfaces this.
type SeatAlreadyTakenError struct {
	Seat Seat
}

func (e *SeatAlreadyTakenError) Error() string {
	return fmt.Sprintf("seat (%d,%d) is already taken", e.Seat.Row, e.Seat.Number)
}

// CapacityIntegrityError reports a flight holding more tickets than the
// airplane has seats. This cannot happen through the ledger; it means the
// stored data was corrupted out of band and needs operator attention.
type CapacityIntegrityError struct {
	FlightID uuid.UUID
	Capacity int
	Taken    int
}

func (e *CapacityIntegrityError) Error() string {
	return fmt.Sprintf("flight %s holds %d tickets but the airplane has %d seats",
		e.FlightID, e.Taken, e.Capacity)
}
