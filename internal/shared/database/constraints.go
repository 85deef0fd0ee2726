package database

import (
	"gorm.io/gorm"
)

// UniqueSeatPerFlight names the index that prevents two tickets from
// occupying the same seat on one flight. Reservation code relies on the
// database rejecting the losing insert of a race with SQLSTATE 23505.
const UniqueSeatPerFlight = "uq_tickets_flight_row_seat"

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One ticket per physical seat per flight
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ` + UniqueSeatPerFlight + `
		ON tickets (flight_id, row, seat);
	`).Error
	if err != nil {
		return err
	}

	// Ticket lookups by order (order detail, cancellation)
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_order_id
		ON tickets (order_id);
	`).Error
	if err != nil {
		return err
	}

	// Availability counts group tickets by flight
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_flight_id
		ON tickets (flight_id);
	`).Error
	if err != nil {
		return err
	}

	// Flight listing filters by departure window
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flights_departure_time
		ON flights (departure_time);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
