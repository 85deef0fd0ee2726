package database

import (
	"skyport/internal/airlines"
	"skyport/internal/airplanes"
	"skyport/internal/airports"
	"skyport/internal/crew"
	"skyport/internal/flights"
	"skyport/internal/orders"
	"skyport/internal/routes"
	"skyport/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() defaults need the extension in place before the tables
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&airports.Airport{},
		&airlines.Airline{},
		&airplanes.AirplaneType{},
		&airplanes.Airplane{},
		&crew.Crew{},
		&routes.Route{},
		&flights.Flight{},
		&orders.Order{},
		&orders.Ticket{},
	)
}
