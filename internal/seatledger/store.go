package seatledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the transactional persistence the ledger runs on. TakenSeats
// and InsertTickets observe the transaction they are called in; callers
// that need atomicity wrap them with InTx.
type Store interface {
	// Layout returns the seating geometry of the airplane serving the
	// flight, or ErrFlightNotFound.
	Layout(ctx context.Context, flightID uuid.UUID) (Layout, error)

	// TakenSeats returns the seats of all tickets on the flight.
	TakenSeats(ctx context.Context, flightID uuid.UUID) ([]Seat, error)

	// LockFlight takes a row lock on the flight, serializing concurrent
	// reservations for it until the surrounding transaction ends.
	LockFlight(ctx context.Context, flightID uuid.UUID) error

	// InsertTickets creates one ticket per seat under the given order.
	// A seat that collides with an existing ticket fails the whole call
	// with SeatAlreadyTakenError naming that seat.
	InsertTickets(ctx context.Context, flightID, orderID uuid.UUID, seats []Seat) ([]Reservation, error)

	// InTx runs fn against a store bound to one database transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

// ticketRow mirrors the tickets table without importing the orders
// package, which sits above the ledger.
type ticketRow struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FlightID  uuid.UUID `gorm:"type:uuid;not null"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null"`
	Row       int       `gorm:"not null"`
	Seat      int       `gorm:"not null"`
	CreatedAt time.Time
}

func (ticketRow) TableName() string {
	return "tickets"
}

type dbStore struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed ledger store. Pass a transaction handle
// to get a store scoped to that transaction.
func NewStore(db *gorm.DB) Store {
	return &dbStore{db: db}
}

func (s *dbStore) Layout(ctx context.Context, flightID uuid.UUID) (Layout, error) {
	var row struct {
		Rows        int `gorm:"column:rows"`
		SeatsPerRow int `gorm:"column:seats_per_row"`
	}
	err := s.db.WithContext(ctx).
		Table("flights").
		Select("airplanes.rows AS rows, airplanes.seats_in_row AS seats_per_row").
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
		Where("flights.id = ?", flightID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Layout{}, ErrFlightNotFound
		}
		return Layout{}, fmt.Errorf("load airplane layout: %w", err)
	}
	return Layout{Rows: row.Rows, SeatsPerRow: row.SeatsPerRow}, nil
}

func (s *dbStore) TakenSeats(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	var rows []struct {
		Row  int `gorm:"column:row"`
		Seat int `gorm:"column:seat"`
	}
	err := s.db.WithContext(ctx).
		Table("tickets").
		Select("row, seat").
		Where("flight_id = ?", flightID).
		Order("row, seat").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load taken seats: %w", err)
	}

	seats := make([]Seat, 0, len(rows))
	for _, r := range rows {
		seats = append(seats, Seat{Row: r.Row, Number: r.Seat})
	}
	return seats, nil
}

func (s *dbStore) LockFlight(ctx context.Context, flightID uuid.UUID) error {
	var row struct {
		ID uuid.UUID `gorm:"column:id"`
	}
	err := s.db.WithContext(ctx).
		Table("flights").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", flightID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlightNotFound
		}
		return fmt.Errorf("lock flight: %w", err)
	}
	return nil
}

func (s *dbStore) InsertTickets(ctx context.Context, flightID, orderID uuid.UUID, seats []Seat) ([]Reservation, error) {
	reservations := make([]Reservation, 0, len(seats))
	for _, seat := range seats {
		row := ticketRow{
			FlightID: flightID,
			OrderID:  orderID,
			Row:      seat.Row,
			Seat:     seat.Number,
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, &SeatAlreadyTakenError{Seat: seat}
			}
			return nil, fmt.Errorf("insert ticket: %w", err)
		}
		reservations = append(reservations, Reservation{
			TicketID: row.ID,
			FlightID: flightID,
			OrderID:  orderID,
			Seat:     seat,
		})
	}
	return reservations, nil
}

func (s *dbStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&dbStore{db: tx})
	})
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
