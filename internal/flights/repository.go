package flights

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyport/internal/crew"
)

// FlightWithDetails is the joined read model for flight listings. The
// sold-ticket count comes from a correlated subquery so one query
// serves the whole page.
type FlightWithDetails struct {
	ID              uuid.UUID
	RouteID         uuid.UUID
	DepartureTime   time.Time
	ArrivalTime     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	SourceID        uuid.UUID
	SourceName      string
	SourceCode      string
	SourceCity      string
	DestinationID   uuid.UUID
	DestinationName string
	DestinationCode string
	DestinationCity string
	AirplaneID      uuid.UUID
	AirplaneName    string
	Rows            int
	SeatsInRow      int
	AirlineID       uuid.UUID
	AirlineName     string
	AirlineCode     string
	TicketsSold     int64
}

const flightSelect = `flights.id, flights.route_id, flights.departure_time, flights.arrival_time,
	flights.created_at, flights.updated_at,
	src.id AS source_id, src.name AS source_name, src.code AS source_code, src.closest_big_city AS source_city,
	dst.id AS destination_id, dst.name AS destination_name, dst.code AS destination_code, dst.closest_big_city AS destination_city,
	airplanes.id AS airplane_id, airplanes.name AS airplane_name, airplanes.rows, airplanes.seats_in_row,
	airlines.id AS airline_id, airlines.name AS airline_name, airlines.code AS airline_code,
	(SELECT COUNT(*) FROM tickets WHERE tickets.flight_id = flights.id) AS tickets_sold`

type Repository interface {
	Create(ctx context.Context, flight *Flight) error
	GetByID(ctx context.Context, id uuid.UUID) (*FlightWithDetails, error)
	GetRaw(ctx context.Context, id uuid.UUID) (*Flight, error)
	List(ctx context.Context, query FlightListQuery) ([]FlightWithDetails, int64, error)
	Update(ctx context.Context, flight *Flight) error
	ReplaceCrew(ctx context.Context, flight *Flight, members []crew.Crew) error
	Delete(ctx context.Context, flight *Flight) error
	GetCrewOf(ctx context.Context, flightID uuid.UUID) ([]crew.Crew, error)
	GetCrewMembers(ctx context.Context, ids []uuid.UUID) ([]crew.Crew, error)
	RouteExists(ctx context.Context, id uuid.UUID) (bool, error)
	AirplaneExists(ctx context.Context, id uuid.UUID) (bool, error)
	AirlineExists(ctx context.Context, id uuid.UUID) (bool, error)
	CountTicketsOn(ctx context.Context, flightID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("flights").
		Joins("JOIN routes ON routes.id = flights.route_id").
		Joins("JOIN airports src ON src.id = routes.source_id").
		Joins("JOIN airports dst ON dst.id = routes.destination_id").
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
		Joins("JOIN airlines ON airlines.id = flights.airline_id")
}

func (r *repository) Create(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*FlightWithDetails, error) {
	var row FlightWithDetails
	err := r.joined(ctx).Select(flightSelect).Where("flights.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) GetRaw(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) List(ctx context.Context, query FlightListQuery) ([]FlightWithDetails, int64, error) {
	var rows []FlightWithDetails
	var total int64

	db := r.joined(ctx)

	if query.Source != "" {
		pattern := "%" + strings.ToLower(query.Source) + "%"
		db = db.Where("LOWER(src.name) LIKE ? OR LOWER(src.closest_big_city) LIKE ?", pattern, pattern)
	}
	if query.Destination != "" {
		pattern := "%" + strings.ToLower(query.Destination) + "%"
		db = db.Where("LOWER(dst.name) LIKE ? OR LOWER(dst.closest_big_city) LIKE ?", pattern, pattern)
	}
	if query.DepartureDate != "" {
		db = db.Where("DATE(flights.departure_time) = ?", query.DepartureDate)
	}
	if query.From != "" {
		db = db.Where("DATE(flights.departure_time) >= ?", query.From)
	}
	if query.To != "" {
		db = db.Where("DATE(flights.departure_time) <= ?", query.To)
	}
	if query.AirlineID != "" {
		db = db.Where("flights.airline_id = ?", query.AirlineID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Select(flightSelect).
		Order("flights.departure_time ASC, flights.id ASC").
		Offset(offset).
		Limit(query.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Omit("Crew").Save(flight).Error
}

func (r *repository) ReplaceCrew(ctx context.Context, flight *Flight, members []crew.Crew) error {
	return r.db.WithContext(ctx).Model(flight).Association("Crew").Replace(members)
}

// Delete removes the flight and its crew assignments in one
// transaction. The caller has already verified no tickets exist.
func (r *repository) Delete(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(flight).Association("Crew").Clear(); err != nil {
			return err
		}
		return tx.Delete(&Flight{}, "id = ?", flight.ID).Error
	})
}

func (r *repository) GetCrewOf(ctx context.Context, flightID uuid.UUID) ([]crew.Crew, error) {
	var members []crew.Crew
	err := r.db.WithContext(ctx).
		Joins("JOIN flight_crew ON flight_crew.crew_id = crew_members.id").
		Where("flight_crew.flight_id = ?", flightID).
		Order("crew_members.last_name, crew_members.first_name").
		Find(&members).Error
	return members, err
}

func (r *repository) GetCrewMembers(ctx context.Context, ids []uuid.UUID) ([]crew.Crew, error) {
	var members []crew.Crew
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error
	return members, err
}

func (r *repository) RouteExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "routes", id)
}

func (r *repository) AirplaneExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "airplanes", id)
}

func (r *repository) AirlineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "airlines", id)
}

func (r *repository) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CountTicketsOn(ctx context.Context, flightID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("tickets").Where("flight_id = ?", flightID).Count(&count).Error
	return count, err
}
