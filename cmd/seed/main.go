package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skyport/internal/airlines"
	"skyport/internal/airplanes"
	"skyport/internal/airports"
	"skyport/internal/crew"
	"skyport/internal/flights"
	"skyport/internal/orders"
	airroutes "skyport/internal/routes"
	"skyport/internal/seatledger"
	"skyport/internal/shared/config"
	"skyport/internal/shared/database"
	"skyport/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Skyport Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	// Delete in reverse dependency order
	tables := []string{
		"tickets",
		"orders",
		"flight_crew",
		"flights",
		"routes",
		"crew_members",
		"airplanes",
		"airplane_types",
		"airlines",
		"airports",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Disable foreign key constraints temporarily
	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	// Re-enable foreign key constraints
	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Seed users first (no dependencies)
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Seed airports (no dependencies)
	airportIDs, err := s.SeedAirports()
	if err != nil {
		return fmt.Errorf("failed to seed airports: %w", err)
	}

	// Seed airlines (no dependencies)
	airlineIDs, err := s.SeedAirlines()
	if err != nil {
		return fmt.Errorf("failed to seed airlines: %w", err)
	}

	// Seed airplane types and airplanes
	typeIDs, err := s.SeedAirplaneTypes()
	if err != nil {
		return fmt.Errorf("failed to seed airplane types: %w", err)
	}
	airplaneIDs, err := s.SeedAirplanes(typeIDs)
	if err != nil {
		return fmt.Errorf("failed to seed airplanes: %w", err)
	}

	// Seed crew members
	crewMembers, err := s.SeedCrew()
	if err != nil {
		return fmt.Errorf("failed to seed crew: %w", err)
	}

	// Seed routes between airports
	routeIDs, err := s.SeedRoutes(airportIDs)
	if err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	// Seed flights
	flightIDs, err := s.SeedFlights(routeIDs, airplaneIDs, airlineIDs, crewMembers)
	if err != nil {
		return fmt.Errorf("failed to seed flights: %w", err)
	}

	// Seed demo orders through the seat ledger
	if err := s.SeedOrders(ctx, userIDs, flightIDs); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	// Clear rate limiter counters so a seeded environment starts fresh
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis state: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 3 users: 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@skyport.io", users.RoleAdmin},
		{"user1", "Alice", "Nguyen", "alice@example.com", users.RoleUser},
		{"user2", "Ben", "Carter", "ben@example.com", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedAirports creates the airports flights operate between
func (s *Seeder) SeedAirports() (map[string]uuid.UUID, error) {
	fmt.Println("  🌍 Seeding airports...")

	airportIDs := make(map[string]uuid.UUID)

	airportsData := []struct {
		name string
		city string
		code string
	}{
		{"John F. Kennedy International Airport", "New York", "JFK"},
		{"Los Angeles International Airport", "Los Angeles", "LAX"},
		{"Heathrow Airport", "London", "LHR"},
		{"Charles de Gaulle Airport", "Paris", "CDG"},
		{"Amsterdam Airport Schiphol", "Amsterdam", "AMS"},
		{"Dubai International Airport", "Dubai", "DXB"},
		{"Singapore Changi Airport", "Singapore", "SIN"},
		{"Narita International Airport", "Tokyo", "NRT"},
	}

	for _, airportData := range airportsData {
		airport := airports.Airport{
			ID:             uuid.New(),
			Name:           airportData.name,
			ClosestBigCity: airportData.city,
			Code:           airportData.code,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&airport).Error; err != nil {
			return nil, fmt.Errorf("failed to create airport %s: %w", airport.Code, err)
		}

		airportIDs[airport.Code] = airport.ID
		fmt.Printf("    ✅ Created airport: %s (%s)\n", airport.Name, airport.Code)
	}

	return airportIDs, nil
}

// SeedAirlines creates the carriers operating flights
func (s *Seeder) SeedAirlines() ([]uuid.UUID, error) {
	fmt.Println("  ✈️ Seeding airlines...")

	var airlineIDs []uuid.UUID

	airlinesData := []struct {
		name    string
		code    string
		country string
	}{
		{"Delta Air Lines", "DL", "United States"},
		{"United Airlines", "UA", "United States"},
		{"British Airways", "BA", "United Kingdom"},
		{"Air France", "AF", "France"},
		{"Emirates", "EK", "United Arab Emirates"},
	}

	for _, airlineData := range airlinesData {
		airline := airlines.Airline{
			ID:        uuid.New(),
			Name:      airlineData.name,
			Code:      airlineData.code,
			Country:   airlineData.country,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&airline).Error; err != nil {
			return nil, fmt.Errorf("failed to create airline %s: %w", airline.Code, err)
		}

		airlineIDs = append(airlineIDs, airline.ID)
		fmt.Printf("    ✅ Created airline: %s (%s)\n", airline.Name, airline.Code)
	}

	return airlineIDs, nil
}

// SeedAirplaneTypes creates the airplane model families
func (s *Seeder) SeedAirplaneTypes() ([]uuid.UUID, error) {
	fmt.Println("  🛩️ Seeding airplane types...")

	var typeIDs []uuid.UUID

	typeNames := []string{
		"Boeing 737",
		"Boeing 787 Dreamliner",
		"Airbus A320",
		"Airbus A350",
	}

	for _, name := range typeNames {
		airplaneType := airplanes.AirplaneType{
			ID:        uuid.New(),
			Name:      name,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&airplaneType).Error; err != nil {
			return nil, fmt.Errorf("failed to create airplane type %s: %w", name, err)
		}

		typeIDs = append(typeIDs, airplaneType.ID)
		fmt.Printf("    ✅ Created airplane type: %s\n", name)
	}

	return typeIDs, nil
}

// SeedAirplanes creates aircraft with their seat grids
func (s *Seeder) SeedAirplanes(typeIDs []uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🛫 Seeding airplanes...")

	var airplaneIDs []uuid.UUID

	airplanesData := []struct {
		name       string
		rows       int
		seatsInRow int
		typeIndex  int
	}{
		{"N801SK", 20, 6, 0}, // Boeing 737, 120 seats
		{"N802SK", 30, 9, 1}, // Boeing 787, 270 seats
		{"G-SKYA", 25, 6, 2}, // Airbus A320, 150 seats
		{"F-HSKY", 32, 9, 3}, // Airbus A350, 288 seats
		{"A6-SKP", 30, 9, 1}, // Boeing 787, 270 seats
	}

	for _, airplaneData := range airplanesData {
		airplane := airplanes.Airplane{
			ID:         uuid.New(),
			Name:       airplaneData.name,
			Rows:       airplaneData.rows,
			SeatsInRow: airplaneData.seatsInRow,
			TypeID:     typeIDs[airplaneData.typeIndex],
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&airplane).Error; err != nil {
			return nil, fmt.Errorf("failed to create airplane %s: %w", airplane.Name, err)
		}

		airplaneIDs = append(airplaneIDs, airplane.ID)
		fmt.Printf("    ✅ Created airplane: %s (%d seats)\n", airplane.Name, airplane.Capacity())
	}

	return airplaneIDs, nil
}

// SeedCrew creates crew members assignable to flights
func (s *Seeder) SeedCrew() ([]crew.Crew, error) {
	fmt.Println("  🧑‍✈️ Seeding crew members...")

	crewData := []struct {
		firstName string
		lastName  string
	}{
		{"James", "Holloway"},
		{"Maria", "Santos"},
		{"Dmitri", "Volkov"},
		{"Aisha", "Rahman"},
		{"Tom", "Becker"},
		{"Elena", "Petrova"},
		{"Liam", "O'Connor"},
		{"Sofia", "Marchetti"},
	}

	var members []crew.Crew
	for _, member := range crewData {
		crewMember := crew.Crew{
			ID:        uuid.New(),
			FirstName: member.firstName,
			LastName:  member.lastName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&crewMember).Error; err != nil {
			return nil, fmt.Errorf("failed to create crew member %s: %w", crewMember.FullName(), err)
		}

		members = append(members, crewMember)
		fmt.Printf("    ✅ Created crew member: %s\n", crewMember.FullName())
	}

	return members, nil
}

// SeedRoutes creates directed routes between seeded airports
func (s *Seeder) SeedRoutes(airportIDs map[string]uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🗺️ Seeding routes...")

	var routeIDs []uuid.UUID

	routesData := []struct {
		source      string
		destination string
		distance    int // km
	}{
		{"JFK", "LAX", 3983},
		{"LAX", "JFK", 3983},
		{"JFK", "LHR", 5541},
		{"LHR", "CDG", 348},
		{"CDG", "DXB", 5246},
		{"DXB", "SIN", 5843},
	}

	for _, routeData := range routesData {
		route := airroutes.Route{
			ID:            uuid.New(),
			SourceID:      airportIDs[routeData.source],
			DestinationID: airportIDs[routeData.destination],
			Distance:      routeData.distance,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&route).Error; err != nil {
			return nil, fmt.Errorf("failed to create route %s-%s: %w", routeData.source, routeData.destination, err)
		}

		routeIDs = append(routeIDs, route.ID)
		fmt.Printf("    ✅ Created route: %s → %s (%d km)\n", routeData.source, routeData.destination, routeData.distance)
	}

	return routeIDs, nil
}

// SeedFlights schedules flights over the coming weeks and assigns crew
func (s *Seeder) SeedFlights(routeIDs, airplaneIDs, airlineIDs []uuid.UUID, crewMembers []crew.Crew) ([]uuid.UUID, error) {
	fmt.Println("  🛬 Seeding flights...")

	var flightIDs []uuid.UUID

	flightsData := []struct {
		routeIndex    int
		airplaneIndex int
		airlineIndex  int
		daysFromNow   int
		departureHour int
		durationHours int
		crewIndexes   []int
	}{
		{0, 0, 0, 7, 8, 6, []int{0, 1}},   // JFK → LAX, Delta
		{1, 0, 1, 7, 18, 6, []int{2, 3}},  // LAX → JFK, United
		{2, 1, 2, 14, 20, 7, []int{4, 5}}, // JFK → LHR, British Airways
		{3, 2, 3, 14, 9, 1, []int{6, 7}},  // LHR → CDG, Air France
		{4, 3, 4, 21, 14, 7, []int{0, 2}}, // CDG → DXB, Emirates
		{5, 4, 4, 30, 2, 7, []int{1, 3}},  // DXB → SIN, Emirates
	}

	for _, flightData := range flightsData {
		departure := time.Now().
			AddDate(0, 0, flightData.daysFromNow).
			Truncate(time.Hour).
			Add(time.Duration(flightData.departureHour) * time.Hour)

		flight := flights.Flight{
			ID:            uuid.New(),
			RouteID:       routeIDs[flightData.routeIndex],
			AirplaneID:    airplaneIDs[flightData.airplaneIndex],
			AirlineID:     airlineIDs[flightData.airlineIndex],
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(flightData.durationHours) * time.Hour),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&flight).Error; err != nil {
			return nil, fmt.Errorf("failed to create flight: %w", err)
		}

		var assigned []crew.Crew
		for _, crewIndex := range flightData.crewIndexes {
			assigned = append(assigned, crewMembers[crewIndex])
		}
		if err := s.db.PostgreSQL.Model(&flight).Association("Crew").Replace(assigned); err != nil {
			return nil, fmt.Errorf("failed to assign crew to flight: %w", err)
		}

		flightIDs = append(flightIDs, flight.ID)
		fmt.Printf("    ✅ Created flight departing %s (%d crew)\n",
			flight.DepartureTime.Format("2006-01-02 15:04"), len(assigned))
	}

	return flightIDs, nil
}

// SeedOrders books demo tickets through the seat ledger, so seeded
// data obeys the same validation and uniqueness rules as the API
func (s *Seeder) SeedOrders(ctx context.Context, userIDs map[string]uuid.UUID, flightIDs []uuid.UUID) error {
	fmt.Println("  🎟️ Seeding orders...")

	orderRepo := orders.NewRepository(s.db.PostgreSQL)

	ordersData := []struct {
		userKey     string
		flightIndex int
		seats       []seatledger.Seat
	}{
		{"user1", 0, []seatledger.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}}},
		{"user2", 0, []seatledger.Seat{{Row: 1, Number: 3}}},
		{"user1", 2, []seatledger.Seat{{Row: 10, Number: 4}}},
	}

	for _, orderData := range ordersData {
		groups := []orders.FlightSeats{
			{FlightID: flightIDs[orderData.flightIndex], Seats: orderData.seats},
		}

		order, err := orderRepo.CreateWithReservations(ctx, userIDs[orderData.userKey], groups)
		if err != nil {
			return fmt.Errorf("failed to create order for %s: %w", orderData.userKey, err)
		}

		fmt.Printf("    ✅ Created order %s (%d tickets)\n", order.ID, len(order.Tickets))
	}

	return nil
}
