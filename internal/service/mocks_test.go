package service

import (
	"context"
	"io"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	if args.Error(0) == nil {
		user.UserID = "user-123"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, placeID string) (*models.Place, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetByIDs(ctx context.Context, placeIDs []string) ([]models.Place, error) {
	args := m.Called(ctx, placeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Place, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]models.Place, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListWithoutPhotos(ctx context.Context) ([]models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, placeID, ownerID string) error {
	args := m.Called(ctx, placeID, ownerID)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, ext, contentType string, file io.Reader, size int64) (string, error) {
	data, _ := io.ReadAll(file)
	args := m.Called(ctx, ext, contentType, string(data), size)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteImage(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockDenyList struct {
	mock.Mock
}

func (m *MockDenyList) Revoke(ctx context.Context, claims *session.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
