package routes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteWithAirports is the joined read model for a route and its two
// airports.
type RouteWithAirports struct {
	ID              uuid.UUID
	Distance        int
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
}

const routeSelect = `routes.id, routes.distance, routes.created_at, routes.updated_at,
	src.id AS source_id, src.name AS source_name, src.code AS source_code, src.closest_big_city AS source_city,
	dst.id AS destination_id, dst.name AS destination_name, dst.code AS destination_code, dst.closest_big_city AS destination_city`

type Repository interface {
	Create(ctx context.Context, route *Route) error
	GetByID(ctx context.Context, id uuid.UUID) (*RouteWithAirports, error)
	GetRaw(ctx context.Context, id uuid.UUID) (*Route, error)
	GetByPair(ctx context.Context, sourceID, destinationID uuid.UUID) (*Route, error)
	List(ctx context.Context, query RouteListQuery) ([]RouteWithAirports, int64, error)
	Update(ctx context.Context, route *Route) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAirports(ctx context.Context, ids []uuid.UUID) (int64, error)
	CountFlightsUsing(ctx context.Context, routeID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("routes").
		Joins("JOIN airports src ON src.id = routes.source_id").
		Joins("JOIN airports dst ON dst.id = routes.destination_id")
}

func (r *repository) Create(ctx context.Context, route *Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*RouteWithAirports, error) {
	var row RouteWithAirports
	err := r.joined(ctx).Select(routeSelect).Where("routes.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) GetRaw(ctx context.Context, id uuid.UUID) (*Route, error) {
	var route Route
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) GetByPair(ctx context.Context, sourceID, destinationID uuid.UUID) (*Route, error) {
	var route Route
	err := r.db.WithContext(ctx).
		Where("source_id = ? AND destination_id = ?", sourceID, destinationID).
		First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// airportFilter narrows by an exact airport id when the value parses
// as a uuid, otherwise by a case-insensitive name or city substring.
func airportFilter(db *gorm.DB, alias, value string) *gorm.DB {
	if id, err := uuid.Parse(value); err == nil {
		return db.Where(alias+".id = ?", id)
	}
	pattern := "%" + strings.ToLower(value) + "%"
	return db.Where("LOWER("+alias+".name) LIKE ? OR LOWER("+alias+".closest_big_city) LIKE ?", pattern, pattern)
}

func (r *repository) List(ctx context.Context, query RouteListQuery) ([]RouteWithAirports, int64, error) {
	var rows []RouteWithAirports
	var total int64

	db := r.joined(ctx)

	if query.Source != "" {
		db = airportFilter(db, "src", query.Source)
	}
	if query.Destination != "" {
		db = airportFilter(db, "dst", query.Destination)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "routes.created_at DESC"
	if query.SortBy == "distance" {
		sortBy = "routes.distance ASC"
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Select(routeSelect).
		Order(sortBy).
		Offset(offset).
		Limit(query.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, route *Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Route{}, "id = ?", id).Error
}

func (r *repository) CountAirports(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("airports").Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *repository) CountFlightsUsing(ctx context.Context, routeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("flights").Where("route_id = ?", routeID).Count(&count).Error
	return count, err
}
