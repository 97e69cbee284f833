package repository

import (
	"context"
	"errors"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("password does not match")
)

// uniqueViolation is the postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type PlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, placeID string) (*models.Place, error)
	GetByIDs(ctx context.Context, placeIDs []string) ([]models.Place, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Place, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]models.Place, error)
	ListWithoutPhotos(ctx context.Context) ([]models.Place, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, placeID, ownerID string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
}

type Repository struct {
	User    UserRepository
	Place   PlaceRepository
	Booking BookingRepository
}

func NewRepository(db *sqlx.DB, bcryptCost int) *Repository {
	return &Repository{
		User:    NewUserRepository(db, bcryptCost),
		Place:   NewPlaceRepository(db),
		Booking: NewBookingRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
