package testRepository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepositoryImpl_Create(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	t.Run("persists price as given", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewBookingRepository(db)

		booking := &models.Booking{
			PlaceID:        "p1",
			UserID:         "u1",
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			Name:           "Ann",
			Mobile:         "+100",
			NumberOfGuests: 2,
			Price:          300,
		}

		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), "p1", "u1", checkIn, checkOut, "Ann", "+100", 2, 300.0, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), booking)

		require.NoError(t, err)
		assert.NotEmpty(t, booking.BookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewBookingRepository(db)

		mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(errors.New("fk violation"))

		err := repo.Create(context.Background(), &models.Booking{PlaceID: "p1", UserID: "u1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")
	})
}

func TestBookingRepositoryImpl_GetByUserID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(db)

	columns := []string{
		"booking_id", "place_id", "user_id", "check_in", "check_out", "name", "mobile",
		"number_of_guests", "price", "created_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow("b1", "p1", "u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), "Ann", "+100", 2, 300.0, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM bookings WHERE user_id = $1 ORDER BY created_at`)).
		WithArgs("u1").
		WillReturnRows(rows)

	bookings, err := repo.GetByUserID(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "p1", bookings[0].PlaceID)
	assert.Equal(t, 3, bookings[0].Nights())
	assert.Equal(t, 300.0, bookings[0].Price)
	assert.Nil(t, bookings[0].Place)
}
