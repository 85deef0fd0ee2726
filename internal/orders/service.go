package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"skyport/internal/seatledger"
	"skyport/internal/shared/config"
	"skyport/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidFlightID = errors.New("invalid flight id")
)

// NotificationService defines the interface for sending order notifications (to avoid import cycles)
type NotificationService interface {
	SendOrderNotification(ctx context.Context, userID uuid.UUID, email, name string,
		orderID uuid.UUID, notificationType string,
		templateData map[string]interface{}) error
}

// UserService defines the interface for fetching user details (to avoid import cycles)
type UserService interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error)
}

type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error)
	GetOrders(ctx context.Context, userID uuid.UUID, isAdmin bool, query OrderListQuery) (*PaginatedOrders, error)
	GetOrderByID(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*OrderResponse, error)
	CancelOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo          Repository
	notifications NotificationService
	users         UserService
	cfg           *config.Config
	log           *logger.Logger
}

// NewService creates the order service. The notification and user services
// may be nil, in which case confirmation emails are skipped.
func NewService(repo Repository, notifications NotificationService, users UserService, cfg *config.Config) Service {
	return &service{
		repo:          repo,
		notifications: notifications,
		users:         users,
		cfg:           cfg,
		log:           logger.GetDefault(),
	}
}

// CreateOrder books every requested seat under a single new order. Seats
// are validated and reserved per flight in the order the client listed
// them; any rejected seat aborts the whole order.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	groups, err := groupTickets(req.Tickets)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.CreateWithReservations(ctx, userID, groups)
	if err != nil {
		return nil, err
	}

	s.log.LogOrderCreated(ctx, order.ID.String(), userID.String(), len(order.Tickets))
	s.notifyOrder(ctx, order, "ORDER_CONFIRMED")

	return s.toResponse(ctx, order)
}

func (s *service) GetOrders(ctx context.Context, userID uuid.UUID, isAdmin bool, query OrderListQuery) (*PaginatedOrders, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = s.cfg.Pagination.OrderPageSize
	}
	if query.Limit > s.cfg.Pagination.MaxPageSize {
		query.Limit = s.cfg.Pagination.MaxPageSize
	}

	orders, total, err := s.repo.List(ctx, userID, isAdmin, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	responses, err := s.toResponses(ctx, orders)
	if err != nil {
		return nil, err
	}

	return &PaginatedOrders{
		Orders:     responses,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

// GetOrderByID returns the order if the caller owns it or is an admin.
// Orders of other users look like missing orders, so their IDs leak
// nothing.
func (s *service) GetOrderByID(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if !isAdmin && order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return s.toResponse(ctx, order)
}

// CancelOrder deletes the order and all its tickets, releasing the seats.
func (s *service) CancelOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrOrderNotFound
	}

	if !isAdmin && order.UserID != userID {
		return ErrOrderNotFound
	}

	if err := s.repo.Cancel(ctx, order); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.log.LogOrderCancelled(ctx, order.ID.String(), order.UserID.String(), len(order.Tickets))
	s.notifyOrder(ctx, order, "ORDER_CANCELLED")

	return nil
}

// groupTickets collects the requested seats per flight, preserving both
// the order flights first appear in and the order of seats within each
// flight. Seat validation reports the first bad seat in the order the
// client sent, so that order must survive the grouping.
func groupTickets(tickets []TicketRequest) ([]FlightSeats, error) {
	groups := make([]FlightSeats, 0, len(tickets))
	index := make(map[uuid.UUID]int, len(tickets))

	for _, t := range tickets {
		flightID, err := uuid.Parse(t.FlightID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFlightID, t.FlightID)
		}

		i, ok := index[flightID]
		if !ok {
			i = len(groups)
			index[flightID] = i
			groups = append(groups, FlightSeats{FlightID: flightID})
		}
		groups[i].Seats = append(groups[i].Seats, seatledger.Seat{Row: t.Row, Number: t.Seat})
	}

	return groups, nil
}

// notifyOrder publishes an order email. Notification failures are logged
// and swallowed; the order itself already succeeded.
func (s *service) notifyOrder(ctx context.Context, order *Order, notificationType string) {
	if s.notifications == nil || s.users == nil {
		return
	}

	email, firstName, lastName, err := s.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "order notification skipped, user lookup failed",
			slog.String("order_id", order.ID.String()),
			slog.String("user_id", order.UserID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	data := map[string]interface{}{
		"order_id":     order.ID.String(),
		"ticket_count": len(order.Tickets),
	}

	name := strings.TrimSpace(firstName + " " + lastName)
	if err := s.notifications.SendOrderNotification(ctx, order.UserID, email, name, order.ID, notificationType, data); err != nil {
		s.log.WarnContext(ctx, "order notification publish failed",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *service) toResponse(ctx context.Context, order *Order) (*OrderResponse, error) {
	responses, err := s.toResponses(ctx, []Order{*order})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// toResponses resolves the flights referenced by the tickets in one
// batch query instead of one lookup per ticket.
func (s *service) toResponses(ctx context.Context, orders []Order) ([]OrderResponse, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range orders {
		for j := range orders[i].Tickets {
			id := orders[i].Tickets[j].FlightID
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	summaries, err := s.repo.FlightSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ticket flights: %w", err)
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, buildOrderResponse(&orders[i], summaries))
	}
	return responses, nil
}

func buildOrderResponse(order *Order, summaries map[uuid.UUID]FlightSummary) OrderResponse {
	tickets := make([]TicketResponse, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		tr := TicketResponse{
			ID:   t.ID.String(),
			Row:  t.Row,
			Seat: t.Seat,
		}
		if fs, ok := summaries[t.FlightID]; ok {
			tr.Flight = TicketFlight{
				ID:              fs.ID.String(),
				Source:          fs.SourceName,
				SourceCode:      fs.SourceCode,
				Destination:     fs.DestinationName,
				DestinationCode: fs.DestinationCode,
				DepartureTime:   fs.DepartureTime,
				ArrivalTime:     fs.ArrivalTime,
			}
		}
		tickets = append(tickets, tr)
	}

	return OrderResponse{
		ID:        order.ID.String(),
		UserID:    order.UserID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   tickets,
	}
}
