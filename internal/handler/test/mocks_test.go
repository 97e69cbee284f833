package test

import (
	"context"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/Chamas111/booking-airbnb/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*session.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Claims), args.Error(1)
}

type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) Create(ctx context.Context, ownerID string, req service.PlaceRequest) (*models.Place, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceService) Update(ctx context.Context, callerID, placeID string, req service.PlaceRequest) (*models.Place, error) {
	args := m.Called(ctx, callerID, placeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceService) GetByID(ctx context.Context, placeID string) (*models.Place, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceService) ListAll(ctx context.Context, limit, offset int) ([]models.Place, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceService) ListOwnedBy(ctx context.Context, ownerID string) ([]models.Place, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceService) Delete(ctx context.Context, callerID, placeID string) error {
	args := m.Called(ctx, callerID, placeID)
	return args.Error(0)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, userID string, req service.BookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ListMine(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) AddByLink(ctx context.Context, link string) (string, error) {
	args := m.Called(ctx, link)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoService) AddByUpload(ctx context.Context, files []service.UploadFile) ([]string, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}
