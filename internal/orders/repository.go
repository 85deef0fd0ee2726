package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyport/internal/seatledger"
)

// FlightSeats is one flight's slice of an order request, seats kept in
// the order the client sent them.
type FlightSeats struct {
	FlightID uuid.UUID
	Seats    []seatledger.Seat
}

// FlightSummary feeds the nested flight block in ticket responses.
type FlightSummary struct {
	ID              uuid.UUID
	SourceName      string
	SourceCode      string
	DestinationName string
	DestinationCode string
	DepartureTime   time.Time
	ArrivalTime     time.Time
}

type Repository interface {
	CreateWithReservations(ctx context.Context, userID uuid.UUID, groups []FlightSeats) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, userID uuid.UUID, allUsers bool, query OrderListQuery) ([]Order, int64, error)
	Cancel(ctx context.Context, order *Order) error
	FlightSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]FlightSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithReservations creates the order row and reserves every
// requested seat inside one transaction. The ledger runs over the
// transaction handle, so any seat failure rolls back the order too and
// nothing partial survives.
func (r *repository) CreateWithReservations(ctx context.Context, userID uuid.UUID, groups []FlightSeats) (*Order, error) {
	var order *Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = &Order{UserID: userID}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		ledger := seatledger.New(seatledger.NewStore(tx))
		for _, group := range groups {
			if _, err := ledger.ValidateAndReserve(ctx, group.FlightID, order.ID, group.Seats); err != nil {
				return err
			}
		}

		return tx.Preload("Tickets").First(order, "id = ?", order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Preload("Tickets").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, allUsers bool, query OrderListQuery) ([]Order, int64, error) {
	var orders []Order
	var total int64

	db := r.db.WithContext(ctx).Model(&Order{})
	if !allUsers {
		db = db.Where("user_id = ?", userID)
	}
	if query.CreatedAt != "" {
		db = db.Where("DATE(created_at) = ?", query.CreatedAt)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Tickets").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Cancel removes the order and its tickets in one transaction, which
// frees the seats for new reservations.
func (r *repository) Cancel(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&Ticket{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Order{}, "id = ?", order.ID).Error
	})
}

func (r *repository) FlightSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]FlightSummary, error) {
	summaries := make(map[uuid.UUID]FlightSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	var rows []FlightSummary
	err := r.db.WithContext(ctx).
		Table("flights").
		Select(`flights.id, flights.departure_time, flights.arrival_time,
			src.name AS source_name, src.code AS source_code,
			dst.name AS destination_name, dst.code AS destination_code`).
		Joins("JOIN routes ON routes.id = flights.route_id").
		Joins("JOIN airports src ON src.id = routes.source_id").
		Joins("JOIN airports dst ON dst.id = routes.destination_id").
		Where("flights.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries[row.ID] = row
	}
	return summaries, nil
}
