// Package seatledger tracks which physical seats are taken on each flight
// and turns validated seat requests into tickets. It is the only component
// allowed to create tickets; everything else goes through it.
package seatledger

import (
	"context"
	"errors"

	"skyport/pkg/logger"

	"github.com/google/uuid"
)

// Seat is one physical seat on an airplane, addressed by row and the
// seat's number within the row. Both start at 1.
type Seat struct {
	Row    int `json:"row"`
	Number int `json:"seat"`
}

// Layout is the seating geometry of the airplane serving a flight.
type Layout struct {
	Rows        int
	SeatsPerRow int
}

// Capacity returns the total number of seats on the airplane.
func (l Layout) Capacity() int {
	return l.Rows * l.SeatsPerRow
}

// Contains reports whether the seat exists on this layout.
func (l Layout) Contains(s Seat) bool {
	return s.Row >= 1 && s.Row <= l.Rows && s.Number >= 1 && s.Number <= l.SeatsPerRow
}

// Reservation is one committed ticket created by ValidateAndReserve.
type Reservation struct {
	TicketID uuid.UUID
	FlightID uuid.UUID
	OrderID  uuid.UUID
	Seat     Seat
}

// Ledger answers seat accounting questions for flights and performs
// atomic seat reservations on top of a transactional Store.
type Ledger struct {
	store Store
	log   *logger.Logger
}

// New creates a ledger over the given store.
func New(store Store) *Ledger {
	return &Ledger{
		store: store,
		log:   logger.GetDefault(),
	}
}

// Capacity returns the seat count of the airplane serving the flight.
func (l *Ledger) Capacity(ctx context.Context, flightID uuid.UUID) (int, error) {
	layout, err := l.store.Layout(ctx, flightID)
	if err != nil {
		return 0, err
	}
	return layout.Capacity(), nil
}

// TakenSeats returns every seat on the flight that already has a ticket,
// across all orders.
func (l *Ledger) TakenSeats(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	return l.store.TakenSeats(ctx, flightID)
}

// AvailableCount returns how many seats on the flight are still free.
// A flight somehow holding more tickets than seats is a data integrity
// failure and surfaces as CapacityIntegrityError, never as a negative
// count.
func (l *Ledger) AvailableCount(ctx context.Context, flightID uuid.UUID) (int, error) {
	layout, err := l.store.Layout(ctx, flightID)
	if err != nil {
		return 0, err
	}
	taken, err := l.store.TakenSeats(ctx, flightID)
	if err != nil {
		return 0, err
	}

	available := layout.Capacity() - len(taken)
	if available < 0 {
		l.log.LogCapacityAnomaly(ctx, flightID.String(), layout.Capacity(), len(taken))
		return 0, &CapacityIntegrityError{
			FlightID: flightID,
			Capacity: layout.Capacity(),
			Taken:    len(taken),
		}
	}
	return available, nil
}

// ValidateAndReserve checks the requested seats against the airplane
// layout and the flight's existing tickets, then creates one ticket per
// seat under the given order. It either creates all tickets or none.
//
// Checks run in a fixed order and report the first offending seat in the
// order the seats were given: out of range, then duplicated within the
// batch, then already taken. The already-taken check and the inserts run
// in one transaction holding the flight row lock, so two competing
// reservations for the same seat serialize; if a competitor slips through
// anyway, the unique index on (flight_id, row, seat) rejects the losing
// insert and the caller sees SeatAlreadyTakenError.
//
// An empty batch is a valid no-op.
func (l *Ledger) ValidateAndReserve(ctx context.Context, flightID, orderID uuid.UUID, seats []Seat) ([]Reservation, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	layout, err := l.store.Layout(ctx, flightID)
	if err != nil {
		return nil, err
	}

	for _, s := range seats {
		if !layout.Contains(s) {
			return nil, &OutOfRangeError{Seat: s, Layout: layout}
		}
	}
	if dup, ok := duplicateSeat(seats); ok {
		return nil, &DuplicateInBatchError{Seat: dup}
	}

	var reservations []Reservation
	err = l.store.InTx(ctx, func(tx Store) error {
		if err := tx.LockFlight(ctx, flightID); err != nil {
			return err
		}

		taken, err := tx.TakenSeats(ctx, flightID)
		if err != nil {
			return err
		}
		occupied := make(map[Seat]struct{}, len(taken))
		for _, s := range taken {
			occupied[s] = struct{}{}
		}
		for _, s := range seats {
			if _, ok := occupied[s]; ok {
				return &SeatAlreadyTakenError{Seat: s}
			}
		}

		created, err := tx.InsertTickets(ctx, flightID, orderID, seats)
		if err != nil {
			return err
		}
		reservations = created
		return nil
	})
	if err != nil {
		var taken *SeatAlreadyTakenError
		if errors.As(err, &taken) {
			l.log.LogSeatConflict(ctx, flightID.String(), taken.Seat.Row, taken.Seat.Number)
		}
		return nil, err
	}

	return reservations, nil
}

// duplicateSeat returns the first seat that repeats an earlier seat in
// the batch.
func duplicateSeat(seats []Seat) (Seat, bool) {
	seen := make(map[Seat]struct{}, len(seats))
	for _, s := range seats {
		if _, ok := seen[s]; ok {
			return s, true
		}
		seen[s] = struct{}{}
	}
	return Seat{}, false
}
