package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skyport/internal/seatledger"
	"skyport/internal/shared/config"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateWithReservations(ctx context.Context, userID uuid.UUID, groups []FlightSeats) (*Order, error) {
	args := m.Called(ctx, userID, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID, allUsers bool, query OrderListQuery) ([]Order, int64, error) {
	args := m.Called(ctx, userID, allUsers, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Cancel(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockRepository) FlightSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]FlightSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]FlightSummary), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendOrderNotification(ctx context.Context, userID uuid.UUID, email, name string,
	orderID uuid.UUID, notificationType string, templateData map[string]interface{}) error {
	args := m.Called(ctx, userID, email, name, orderID, notificationType, templateData)
	return args.Error(0)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID uuid.UUID) (string, string, string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.String(1), args.String(2), args.Error(3)
}

func testConfig() *config.Config {
	return &config.Config{
		Pagination: config.PaginationConfig{
			DefaultPageSize: 10,
			OrderPageSize:   3,
			MaxPageSize:     100,
		},
	}
}

func TestGroupTickets(t *testing.T) {
	flight1 := uuid.New()
	flight2 := uuid.New()

	groups, err := groupTickets([]TicketRequest{
		{FlightID: flight1.String(), Row: 1, Seat: 1},
		{FlightID: flight2.String(), Row: 5, Seat: 2},
		{FlightID: flight1.String(), Row: 1, Seat: 2},
	})
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, flight1, groups[0].FlightID)
	assert.Equal(t, []seatledger.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}}, groups[0].Seats)
	assert.Equal(t, flight2, groups[1].FlightID)
	assert.Equal(t, []seatledger.Seat{{Row: 5, Number: 2}}, groups[1].Seats)
}

func TestGroupTickets_InvalidFlightID(t *testing.T) {
	_, err := groupTickets([]TicketRequest{{FlightID: "not-a-uuid", Row: 1, Seat: 1}})
	assert.ErrorIs(t, err, ErrInvalidFlightID)
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	mockRepo := &MockRepository{}
	mockNotifications := &MockNotificationService{}
	mockUsers := &MockUserService{}
	service := NewService(mockRepo, mockNotifications, mockUsers, testConfig())

	ctx := context.Background()
	userID := uuid.New()
	flightID := uuid.New()
	orderID := uuid.New()
	departure := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	order := &Order{
		ID:     orderID,
		UserID: userID,
		Tickets: []Ticket{
			{ID: uuid.New(), FlightID: flightID, OrderID: orderID, Row: 1, Seat: 1},
			{ID: uuid.New(), FlightID: flightID, OrderID: orderID, Row: 1, Seat: 2},
		},
	}

	expectedGroups := []FlightSeats{
		{FlightID: flightID, Seats: []seatledger.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}}},
	}
	mockRepo.On("CreateWithReservations", ctx, userID, expectedGroups).Return(order, nil).Once()
	mockRepo.On("FlightSummaries", ctx, []uuid.UUID{flightID}).Return(map[uuid.UUID]FlightSummary{
		flightID: {
			ID:              flightID,
			SourceName:      "John F. Kennedy International Airport",
			SourceCode:      "JFK",
			DestinationName: "Los Angeles International Airport",
			DestinationCode: "LAX",
			DepartureTime:   departure,
			ArrivalTime:     departure.Add(6 * time.Hour),
		},
	}, nil).Once()
	mockUsers.On("GetUserByID", ctx, userID).Return("alice@example.com", "Alice", "Nguyen", nil).Once()
	mockNotifications.On("SendOrderNotification", ctx, userID, "alice@example.com", "Alice Nguyen",
		orderID, "ORDER_CONFIRMED", map[string]interface{}{
			"order_id":     orderID.String(),
			"ticket_count": 2,
		}).Return(nil).Once()

	resp, err := service.CreateOrder(ctx, userID, CreateOrderRequest{
		Tickets: []TicketRequest{
			{FlightID: flightID.String(), Row: 1, Seat: 1},
			{FlightID: flightID.String(), Row: 1, Seat: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, orderID.String(), resp.ID)
	assert.Equal(t, userID.String(), resp.UserID)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, 1, resp.Tickets[0].Row)
	assert.Equal(t, 1, resp.Tickets[0].Seat)
	assert.Equal(t, "JFK", resp.Tickets[0].Flight.SourceCode)
	assert.Equal(t, "LAX", resp.Tickets[0].Flight.DestinationCode)

	mockRepo.AssertExpectations(t)
	mockNotifications.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

// Seat ledger rejections must reach the controller untranslated, so it
// can map each error type to its own status code.
func TestOrderService_CreateOrder_LedgerErrorPassesThrough(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, nil, testConfig())

	ctx := context.Background()
	userID := uuid.New()
	flightID := uuid.New()

	takenErr := &seatledger.SeatAlreadyTakenError{Seat: seatledger.Seat{Row: 1, Number: 1}}
	mockRepo.On("CreateWithReservations", ctx, userID, mock.Anything).Return(nil, takenErr).Once()

	_, err := service.CreateOrder(ctx, userID, CreateOrderRequest{
		Tickets: []TicketRequest{{FlightID: flightID.String(), Row: 1, Seat: 1}},
	})

	var taken *seatledger.SeatAlreadyTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, seatledger.Seat{Row: 1, Number: 1}, taken.Seat)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_NotificationFailureDoesNotFailOrder(t *testing.T) {
	mockRepo := &MockRepository{}
	mockNotifications := &MockNotificationService{}
	mockUsers := &MockUserService{}
	service := NewService(mockRepo, mockNotifications, mockUsers, testConfig())

	ctx := context.Background()
	userID := uuid.New()
	order := &Order{ID: uuid.New(), UserID: userID}

	mockRepo.On("CreateWithReservations", ctx, userID, mock.Anything).Return(order, nil).Once()
	mockRepo.On("FlightSummaries", ctx, mock.Anything).Return(map[uuid.UUID]FlightSummary{}, nil).Once()
	mockUsers.On("GetUserByID", ctx, userID).Return("ben@example.com", "Ben", "Carter", nil).Once()
	mockNotifications.On("SendOrderNotification", ctx, userID, "ben@example.com", "Ben Carter",
		order.ID, "ORDER_CONFIRMED", mock.Anything).Return(errors.New("kafka unreachable")).Once()

	resp, err := service.CreateOrder(ctx, userID, CreateOrderRequest{})

	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), resp.ID)
	mockNotifications.AssertExpectations(t)
}

func TestOrderService_CreateOrder_WithoutNotificationService(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, nil, testConfig())

	ctx := context.Background()
	userID := uuid.New()
	order := &Order{ID: uuid.New(), UserID: userID}

	mockRepo.On("CreateWithReservations", ctx, userID, mock.Anything).Return(order, nil).Once()
	mockRepo.On("FlightSummaries", ctx, mock.Anything).Return(map[uuid.UUID]FlightSummary{}, nil).Once()

	resp, err := service.CreateOrder(ctx, userID, CreateOrderRequest{})

	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), resp.ID)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetOrders_PaginationDefaults(t *testing.T) {
	testCases := []struct {
		name      string
		query     OrderListQuery
		wantPage  int
		wantLimit int
	}{
		{"zero values fall back to defaults", OrderListQuery{}, 1, 3},
		{"negative page becomes first page", OrderListQuery{Page: -2, Limit: 5}, 1, 5},
		{"limit above maximum is clamped", OrderListQuery{Page: 2, Limit: 500}, 2, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			service := NewService(mockRepo, nil, nil, testConfig())

			ctx := context.Background()
			userID := uuid.New()
			clamped := OrderListQuery{Page: tc.wantPage, Limit: tc.wantLimit, CreatedAt: tc.query.CreatedAt}

			mockRepo.On("List", ctx, userID, false, clamped).Return([]Order{}, int64(0), nil).Once()
			mockRepo.On("FlightSummaries", ctx, mock.Anything).Return(map[uuid.UUID]FlightSummary{}, nil).Once()

			result, err := service.GetOrders(ctx, userID, false, tc.query)

			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, result.Page)
			assert.Equal(t, tc.wantLimit, result.Limit)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetOrders_TotalPages(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, nil, testConfig())

	ctx := context.Background()
	userID := uuid.New()

	orders := []Order{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
	}
	mockRepo.On("List", ctx, userID, true, OrderListQuery{Page: 1, Limit: 3}).
		Return(orders, int64(7), nil).Once()
	mockRepo.On("FlightSummaries", ctx, mock.Anything).Return(map[uuid.UUID]FlightSummary{}, nil).Once()

	result, err := service.GetOrders(ctx, userID, true, OrderListQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Orders, 3)
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	orderID := uuid.New()
	order := &Order{ID: orderID, UserID: owner}

	testCases := []struct {
		name      string
		caller    uuid.UUID
		isAdmin   bool
		wantFound bool
	}{
		{"owner sees own order", owner, false, true},
		{"admin sees any order", stranger, true, true},
		{"stranger gets not found", stranger, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			service := NewService(mockRepo, nil, nil, testConfig())

			ctx := context.Background()
			mockRepo.On("GetByID", ctx, orderID).Return(order, nil).Once()
			if tc.wantFound {
				mockRepo.On("FlightSummaries", ctx, mock.Anything).Return(map[uuid.UUID]FlightSummary{}, nil).Once()
			}

			resp, err := service.GetOrderByID(ctx, tc.caller, tc.isAdmin, orderID)

			if tc.wantFound {
				require.NoError(t, err)
				assert.Equal(t, orderID.String(), resp.ID)
			} else {
				assert.ErrorIs(t, err, ErrOrderNotFound)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetOrderByID_MissingOrder(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, nil, testConfig())

	ctx := context.Background()
	orderID := uuid.New()
	mockRepo.On("GetByID", ctx, orderID).Return(nil, errors.New("record not found")).Once()

	_, err := service.GetOrderByID(ctx, uuid.New(), true, orderID)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_CancelOrder(t *testing.T) {
	mockRepo := &MockRepository{}
	mockNotifications := &MockNotificationService{}
	mockUsers := &MockUserService{}
	service := NewService(mockRepo, mockNotifications, mockUsers, testConfig())

	ctx := context.Background()
	owner := uuid.New()
	orderID := uuid.New()
	order := &Order{ID: orderID, UserID: owner, Tickets: []Ticket{{ID: uuid.New(), Row: 1, Seat: 1}}}

	mockRepo.On("GetByID", ctx, orderID).Return(order, nil).Once()
	mockRepo.On("Cancel", ctx, order).Return(nil).Once()
	mockUsers.On("GetUserByID", ctx, owner).Return("alice@example.com", "Alice", "Nguyen", nil).Once()
	mockNotifications.On("SendOrderNotification", ctx, owner, "alice@example.com", "Alice Nguyen",
		orderID, "ORDER_CANCELLED", mock.Anything).Return(nil).Once()

	err := service.CancelOrder(ctx, owner, false, orderID)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockNotifications.AssertExpectations(t)
}

func TestOrderService_CancelOrder_StrangerGetsNotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, nil, testConfig())

	ctx := context.Background()
	orderID := uuid.New()
	order := &Order{ID: orderID, UserID: uuid.New()}

	mockRepo.On("GetByID", ctx, orderID).Return(order, nil).Once()

	err := service.CancelOrder(ctx, uuid.New(), false, orderID)

	assert.ErrorIs(t, err, ErrOrderNotFound)
	mockRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}
