package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BookingRepositoryImpl struct {
	DB *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{DB: db}
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings
		(booking_id, place_id, user_id, check_in, check_out, name, mobile, number_of_guests, price, created_at)
		VALUES
		(:booking_id, :place_id, :user_id, :check_in, :check_out, :name, :mobile, :number_of_guests, :price, :created_at)
	`

	if booking.BookingID == "" {
		booking.BookingID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()

	_, err := r.DB.NamedExecContext(ctx, query, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByUserID returns the user's bookings without the place attached.
func (r *BookingRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `SELECT * FROM bookings WHERE user_id = $1 ORDER BY created_at`

	bookings := []models.Booking{}
	err := r.DB.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of user %s: %w", userID, err)
	}

	return bookings, nil
}
