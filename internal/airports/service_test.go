package airports

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, airport *Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Airport), args.Error(1)
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Airport), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context, query AirportListQuery) ([]Airport, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Airport), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Airport, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Airport), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CountRoutesUsing(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestAirportService_CreateAirport_NormalizesCode(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("GetByCode", ctx, "JFK").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(a *Airport) bool {
		return a.Code == "JFK" && a.Name == "John F. Kennedy International Airport"
	})).Return(nil).Once()

	resp, err := service.CreateAirport(ctx, CreateAirportRequest{
		Name:           "  John F. Kennedy International Airport ",
		ClosestBigCity: "New York",
		Code:           " jfk ",
	})

	require.NoError(t, err)
	assert.Equal(t, "JFK", resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestAirportService_CreateAirport_DuplicateCode(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)

	ctx := context.Background()
	existing := &Airport{ID: uuid.New(), Code: "JFK"}
	mockRepo.On("GetByCode", ctx, "JFK").Return(existing, nil).Once()

	_, err := service.CreateAirport(ctx, CreateAirportRequest{
		Name:           "John F. Kennedy International Airport",
		ClosestBigCity: "New York",
		Code:           "JFK",
	})

	assert.ErrorIs(t, err, ErrAirportCodeExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAirportService_UpdateAirport_KeepingOwnCodeIsAllowed(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)

	ctx := context.Background()
	id := uuid.New()
	code := "JFK"
	existing := &Airport{ID: id, Code: "JFK"}

	mockRepo.On("GetByCode", ctx, "JFK").Return(existing, nil).Once()
	mockRepo.On("Update", ctx, id, map[string]interface{}{"code": "JFK"}).Return(existing, nil).Once()

	_, err := service.UpdateAirport(ctx, id, UpdateAirportRequest{Code: &code})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAirportService_UpdateAirport_CodeTakenByAnother(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)

	ctx := context.Background()
	code := "LAX"
	other := &Airport{ID: uuid.New(), Code: "LAX"}
	mockRepo.On("GetByCode", ctx, "LAX").Return(other, nil).Once()

	_, err := service.UpdateAirport(ctx, uuid.New(), UpdateAirportRequest{Code: &code})

	assert.ErrorIs(t, err, ErrAirportCodeExists)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestAirportService_GetAllAirports_Pagination(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)

	ctx := context.Background()
	airports := []Airport{
		{ID: uuid.New(), Name: "John F. Kennedy International Airport", Code: "JFK", ClosestBigCity: "New York"},
		{ID: uuid.New(), Name: "Los Angeles International Airport", Code: "LAX", ClosestBigCity: "Los Angeles"},
	}
	mockRepo.On("GetAll", ctx, AirportListQuery{}).Return(airports, int64(12), nil).Once()

	result, err := service.GetAllAirports(ctx, AirportListQuery{})

	require.NoError(t, err)
	assert.Len(t, result.Airports, 2)
	assert.Equal(t, int64(12), result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 2, result.TotalPages)
}

func TestAirportService_DeleteAirport(t *testing.T) {
	t.Run("refuses while routes reference it", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo)

		ctx := context.Background()
		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(&Airport{ID: id}, nil).Once()
		mockRepo.On("CountRoutesUsing", ctx, id).Return(int64(3), nil).Once()

		err := service.DeleteAirport(ctx, id)

		assert.ErrorIs(t, err, ErrAirportInUse)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes unreferenced airport", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo)

		ctx := context.Background()
		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(&Airport{ID: id}, nil).Once()
		mockRepo.On("CountRoutesUsing", ctx, id).Return(int64(0), nil).Once()
		mockRepo.On("Delete", ctx, id).Return(nil).Once()

		err := service.DeleteAirport(ctx, id)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing airport", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo)

		ctx := context.Background()
		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(nil, gorm.ErrRecordNotFound).Once()

		err := service.DeleteAirport(ctx, id)

		assert.ErrorIs(t, err, ErrAirportNotFound)
	})
}
