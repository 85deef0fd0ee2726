package flights

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skyport/internal/crew"
	"skyport/internal/seatledger"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, flight *Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*FlightWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FlightWithDetails), args.Error(1)
}

func (m *MockRepository) GetRaw(ctx context.Context, id uuid.UUID) (*Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Flight), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, query FlightListQuery) ([]FlightWithDetails, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]FlightWithDetails), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, flight *Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockRepository) ReplaceCrew(ctx context.Context, flight *Flight, members []crew.Crew) error {
	args := m.Called(ctx, flight, members)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, flight *Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockRepository) GetCrewOf(ctx context.Context, flightID uuid.UUID) ([]crew.Crew, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crew.Crew), args.Error(1)
}

func (m *MockRepository) GetCrewMembers(ctx context.Context, ids []uuid.UUID) ([]crew.Crew, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crew.Crew), args.Error(1)
}

func (m *MockRepository) RouteExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) AirplaneExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) AirlineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CountTicketsOn(ctx context.Context, flightID uuid.UUID) (int64, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).(int64), args.Error(1)
}

// fakeSeatStore serves fixed taken seats to the ledger, standing in for
// the tickets table.
type fakeSeatStore struct {
	seats map[uuid.UUID][]seatledger.Seat
}

func (f *fakeSeatStore) Layout(ctx context.Context, flightID uuid.UUID) (seatledger.Layout, error) {
	return seatledger.Layout{Rows: 30, SeatsPerRow: 9}, nil
}

func (f *fakeSeatStore) TakenSeats(ctx context.Context, flightID uuid.UUID) ([]seatledger.Seat, error) {
	return f.seats[flightID], nil
}

func (f *fakeSeatStore) LockFlight(ctx context.Context, flightID uuid.UUID) error {
	return nil
}

func (f *fakeSeatStore) InsertTickets(ctx context.Context, flightID, orderID uuid.UUID, seats []seatledger.Seat) ([]seatledger.Reservation, error) {
	return nil, nil
}

func (f *fakeSeatStore) InTx(ctx context.Context, fn func(tx seatledger.Store) error) error {
	return fn(f)
}

func testLedger(seats map[uuid.UUID][]seatledger.Seat) *seatledger.Ledger {
	return seatledger.New(&fakeSeatStore{seats: seats})
}

func detailsRow(id uuid.UUID, rows, seatsInRow int, sold int64) FlightWithDetails {
	return FlightWithDetails{
		ID:              id,
		RouteID:         uuid.New(),
		DepartureTime:   time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:     time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC),
		SourceID:        uuid.New(),
		SourceName:      "John F. Kennedy International Airport",
		SourceCode:      "JFK",
		SourceCity:      "New York",
		DestinationID:   uuid.New(),
		DestinationName: "Los Angeles International Airport",
		DestinationCode: "LAX",
		DestinationCity: "Los Angeles",
		AirplaneID:      uuid.New(),
		AirplaneName:    "N801SK",
		Rows:            rows,
		SeatsInRow:      seatsInRow,
		AirlineID:       uuid.New(),
		AirlineName:     "Delta Air Lines",
		AirlineCode:     "DL",
		TicketsSold:     sold,
	}
}

func TestFlightService_GetAllFlights_Availability(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	rows := []FlightWithDetails{
		detailsRow(uuid.New(), 2, 2, 1),
		detailsRow(uuid.New(), 2, 2, 4),
	}
	mockRepo.On("List", ctx, FlightListQuery{}).Return(rows, int64(2), nil).Once()

	result, err := service.GetAllFlights(ctx, FlightListQuery{})

	require.NoError(t, err)
	require.Len(t, result.Flights, 2)
	assert.Equal(t, 4, result.Flights[0].Capacity)
	assert.Equal(t, 3, result.Flights[0].TicketsAvailable)
	assert.Equal(t, 0, result.Flights[1].TicketsAvailable)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
	mockRepo.AssertExpectations(t)
}

// A flight with more tickets than seats is corrupt data. Listings must
// still render it rather than fail, with availability floored at zero.
func TestFlightService_GetAllFlights_ClampsOversoldFlight(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	row := detailsRow(uuid.New(), 2, 2, 5)
	mockRepo.On("List", ctx, FlightListQuery{}).Return([]FlightWithDetails{row}, int64(1), nil).Once()

	result, err := service.GetAllFlights(ctx, FlightListQuery{})

	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	assert.Equal(t, 4, result.Flights[0].Capacity)
	assert.Equal(t, 0, result.Flights[0].TicketsAvailable)
}

func TestFlightService_GetFlightByID(t *testing.T) {
	flightID := uuid.New()
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(map[uuid.UUID][]seatledger.Seat{
		flightID: {{Row: 1, Number: 1}, {Row: 1, Number: 2}},
	}))

	ctx := context.Background()
	row := detailsRow(flightID, 20, 6, 2)
	members := []crew.Crew{{ID: uuid.New(), FirstName: "James", LastName: "Holloway"}}

	mockRepo.On("GetByID", ctx, flightID).Return(&row, nil).Once()
	mockRepo.On("GetCrewOf", ctx, flightID).Return(members, nil).Once()

	resp, err := service.GetFlightByID(ctx, flightID)

	require.NoError(t, err)
	assert.Equal(t, flightID.String(), resp.ID)
	assert.Equal(t, 120, resp.Capacity)
	assert.Equal(t, 118, resp.TicketsAvailable)
	require.Len(t, resp.Crew, 1)
	assert.Equal(t, "James Holloway", resp.Crew[0].FullName)
	assert.Equal(t, []seatledger.Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}}, resp.TakenSeats)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_GetFlightByID_NotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	flightID := uuid.New()
	mockRepo.On("GetByID", ctx, flightID).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := service.GetFlightByID(ctx, flightID)

	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestFlightService_CreateFlight_InvalidTimes(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	departure := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	_, err := service.CreateFlight(context.Background(), CreateFlightRequest{
		RouteID:       uuid.New().String(),
		AirplaneID:    uuid.New().String(),
		AirlineID:     uuid.New().String(),
		DepartureTime: departure,
		ArrivalTime:   departure,
	})

	assert.ErrorIs(t, err, ErrInvalidTimes)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_CreateFlight_MissingRoute(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	routeID := uuid.New()
	departure := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	mockRepo.On("RouteExists", ctx, routeID).Return(false, nil).Once()

	_, err := service.CreateFlight(ctx, CreateFlightRequest{
		RouteID:       routeID.String(),
		AirplaneID:    uuid.New().String(),
		AirlineID:     uuid.New().String(),
		DepartureTime: departure,
		ArrivalTime:   departure.Add(6 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestFlightService_CreateFlight_UnknownCrewMember(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	routeID := uuid.New()
	airplaneID := uuid.New()
	airlineID := uuid.New()
	crewID := uuid.New()
	departure := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	mockRepo.On("RouteExists", ctx, routeID).Return(true, nil).Once()
	mockRepo.On("AirplaneExists", ctx, airplaneID).Return(true, nil).Once()
	mockRepo.On("AirlineExists", ctx, airlineID).Return(true, nil).Once()
	mockRepo.On("GetCrewMembers", ctx, []uuid.UUID{crewID}).Return([]crew.Crew{}, nil).Once()

	_, err := service.CreateFlight(ctx, CreateFlightRequest{
		RouteID:       routeID.String(),
		AirplaneID:    airplaneID.String(),
		AirlineID:     airlineID.String(),
		DepartureTime: departure,
		ArrivalTime:   departure.Add(6 * time.Hour),
		CrewIDs:       []string{crewID.String()},
	})

	assert.ErrorIs(t, err, ErrCrewNotFound)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_CreateFlight_Success(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	routeID := uuid.New()
	airplaneID := uuid.New()
	airlineID := uuid.New()
	flightID := uuid.New()
	departure := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	mockRepo.On("RouteExists", ctx, routeID).Return(true, nil).Once()
	mockRepo.On("AirplaneExists", ctx, airplaneID).Return(true, nil).Once()
	mockRepo.On("AirlineExists", ctx, airlineID).Return(true, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*flights.Flight")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Flight).ID = flightID
		}).Return(nil).Once()

	row := detailsRow(flightID, 20, 6, 0)
	mockRepo.On("GetByID", ctx, flightID).Return(&row, nil).Once()
	mockRepo.On("GetCrewOf", ctx, flightID).Return([]crew.Crew{}, nil).Once()

	resp, err := service.CreateFlight(ctx, CreateFlightRequest{
		RouteID:       routeID.String(),
		AirplaneID:    airplaneID.String(),
		AirlineID:     airlineID.String(),
		DepartureTime: departure,
		ArrivalTime:   departure.Add(6 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, flightID.String(), resp.ID)
	assert.Equal(t, 120, resp.TicketsAvailable)
	assert.Empty(t, resp.TakenSeats)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_UpdateFlight_AirplaneSwapBlockedWhenTicketsSold(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, testLedger(nil))

	ctx := context.Background()
	flightID := uuid.New()
	oldAirplane := uuid.New()
	newAirplane := uuid.New()
	departure := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	flight := &Flight{
		ID:            flightID,
		AirplaneID:    oldAirplane,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(6 * time.Hour),
	}
	newAirplaneStr := newAirplane.String()

	mockRepo.On("GetRaw", ctx, flightID).Return(flight, nil).Once()
	mockRepo.On("AirplaneExists", ctx, newAirplane).Return(true, nil).Once()
	mockRepo.On("CountTicketsOn", ctx, flightID).Return(int64(2), nil).Once()

	_, err := service.UpdateFlight(ctx, flightID, UpdateFlightRequest{AirplaneID: &newAirplaneStr})

	assert.ErrorIs(t, err, ErrFlightHasTickets)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFlightService_DeleteFlight(t *testing.T) {
	t.Run("refuses when tickets are sold", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo, testLedger(nil))

		ctx := context.Background()
		flightID := uuid.New()
		flight := &Flight{ID: flightID}

		mockRepo.On("GetRaw", ctx, flightID).Return(flight, nil).Once()
		mockRepo.On("CountTicketsOn", ctx, flightID).Return(int64(1), nil).Once()

		err := service.DeleteFlight(ctx, flightID)

		assert.ErrorIs(t, err, ErrFlightHasTickets)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes when no tickets exist", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo, testLedger(nil))

		ctx := context.Background()
		flightID := uuid.New()
		flight := &Flight{ID: flightID}

		mockRepo.On("GetRaw", ctx, flightID).Return(flight, nil).Once()
		mockRepo.On("CountTicketsOn", ctx, flightID).Return(int64(0), nil).Once()
		mockRepo.On("Delete", ctx, flight).Return(nil).Once()

		err := service.DeleteFlight(ctx, flightID)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
