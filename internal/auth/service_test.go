package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skyport/internal/shared/config"
	"skyport/internal/users"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	args := m.Called(ctx, userID, hashedPassword)
	return args.Error(0)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendWelcomeNotification(ctx context.Context, userID uuid.UUID, email, name string) error {
	args := m.Called(ctx, userID, email, name)
	return args.Error(0)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "auth-test-secret",
			Issuer:           "skyport",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 7 * 24 * time.Hour,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := &MockRepository{}
	mockNotifications := &MockNotificationService{}
	service := NewService(mockRepo, mockNotifications, testAuthConfig())

	ctx := context.Background()
	userID := uuid.New()

	mockRepo.On("EmailExists", ctx, "alice@example.com").Return(false, nil).Once()
	mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*users.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*users.User).ID = userID
		}).Return(nil).Once()
	mockNotifications.On("SendWelcomeNotification", ctx, userID, "alice@example.com", "Alice Nguyen").
		Return(nil).Once()

	resp, err := service.Register(ctx, &RegisterRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
		Password:  "qwerty",
	})

	require.NoError(t, err)
	assert.Equal(t, userID.String(), resp.User.ID)
	assert.Equal(t, string(users.RoleUser), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

	// The stored password must be a bcrypt hash of the original.
	created := mockRepo.Calls[1].Arguments.Get(1).(*users.User)
	assert.NotEqual(t, "qwerty", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("qwerty")))

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "access", claims.Type)

	mockRepo.AssertExpectations(t)
	mockNotifications.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	mockRepo.On("EmailExists", ctx, "alice@example.com").Return(true, nil).Once()

	_, err := service.Register(ctx, &RegisterRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
		Password:  "qwerty",
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthService_Register_UnknownRoleFallsBackToUser(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	mockRepo.On("EmailExists", ctx, mock.Anything).Return(false, nil).Once()
	mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*users.User")).Return(nil).Once()

	resp, err := service.Register(ctx, &RegisterRequest{
		FirstName: "Ben",
		LastName:  "Carter",
		Email:     "ben@example.com",
		Password:  "qwerty",
		Role:      "superuser",
	})

	require.NoError(t, err)
	assert.Equal(t, string(users.RoleUser), resp.User.Role)
}

func TestAuthService_Register_WelcomeFailureDoesNotFailRegistration(t *testing.T) {
	mockRepo := &MockRepository{}
	mockNotifications := &MockNotificationService{}
	service := NewService(mockRepo, mockNotifications, testAuthConfig())

	ctx := context.Background()
	mockRepo.On("EmailExists", ctx, mock.Anything).Return(false, nil).Once()
	mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*users.User")).Return(nil).Once()
	mockNotifications.On("SendWelcomeNotification", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("kafka unreachable")).Once()

	_, err := service.Register(ctx, &RegisterRequest{
		FirstName: "Ben",
		LastName:  "Carter",
		Email:     "ben@example.com",
		Password:  "qwerty",
	})

	require.NoError(t, err)
	mockNotifications.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	user := &users.User{
		ID:        uuid.New(),
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
		Password:  hashPassword(t, "qwerty"),
		Role:      users.RoleAdmin,
	}
	mockRepo.On("GetUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()

	resp, err := service.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "qwerty"})

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, string(users.RoleAdmin), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(users.RoleAdmin), claims.Role)
	mockRepo.AssertExpectations(t)
}

// A wrong password and an unknown email must be indistinguishable to
// the caller.
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo, nil, testAuthConfig())

		ctx := context.Background()
		mockRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, ErrUserNotFound).Once()

		_, err := service.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "qwerty"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := &MockRepository{}
		service := NewService(mockRepo, nil, testAuthConfig())

		ctx := context.Background()
		user := &users.User{
			ID:       uuid.New(),
			Email:    "alice@example.com",
			Password: hashPassword(t, "qwerty"),
			Role:     users.RoleUser,
		}
		mockRepo.On("GetUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()

		_, err := service.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "hunter2"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	user := &users.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashPassword(t, "qwerty"),
		Role:     users.RoleUser,
	}
	mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
	mockRepo.On("GetUserByID", ctx, user.ID.String()).Return(user, nil).Once()

	login, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "qwerty"})
	require.NoError(t, err)

	pair, err := service.RefreshToken(ctx, login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := service.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	mockRepo.AssertExpectations(t)
}

// An access token must not be usable in place of a refresh token.
func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	user := &users.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashPassword(t, "qwerty"),
		Role:     users.RoleUser,
	}
	mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

	login, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "qwerty"})
	require.NoError(t, err)

	_, err = service.RefreshToken(ctx, login.AccessToken)

	assert.ErrorIs(t, err, ErrInvalidToken)
	mockRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	service := NewService(&MockRepository{}, nil, testAuthConfig())

	_, err := service.RefreshToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	user := &users.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashPassword(t, "qwerty"),
		Role:     users.RoleUser,
	}
	userID := user.ID.String()

	mockRepo.On("GetUserByID", ctx, userID).Return(user, nil).Once()
	mockRepo.On("UpdateUserPassword", ctx, userID, mock.MatchedBy(func(hashed string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte("correcthorse")) == nil
	})).Return(nil).Once()

	err := service.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "qwerty",
		NewPassword:     "correcthorse",
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo, nil, testAuthConfig())

	ctx := context.Background()
	user := &users.User{
		ID:       uuid.New(),
		Password: hashPassword(t, "qwerty"),
	}
	userID := user.ID.String()
	mockRepo.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	err := service.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "hunter2",
		NewPassword:     "correcthorse",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockRepo.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything)
}
