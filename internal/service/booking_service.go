package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/repository"
)

type BookingRequest struct {
	PlaceID        string
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Name           string
	Mobile         string
	Price          float64
}

type BookingService interface {
	Create(ctx context.Context, userID string, req BookingRequest) (*models.Booking, error)
	ListMine(ctx context.Context, userID string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	placeRepo   repository.PlaceRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, placeRepo repository.PlaceRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		placeRepo:   placeRepo,
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create stores the booking with the price the client computed. The price is
// not recomputed from the place and overlapping stays are not rejected.
func (s *bookingService) Create(ctx context.Context, userID string, req BookingRequest) (*models.Booking, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	booking := &models.Booking{
		UserID:         userID,
		CheckIn:        truncateDay(req.CheckIn),
		CheckOut:       truncateDay(req.CheckOut),
		Name:           strings.TrimSpace(req.Name),
		Mobile:         strings.TrimSpace(req.Mobile),
		NumberOfGuests: req.NumberOfGuests,
		Price:          req.Price,
	}
	if booking.Nights() < 1 {
		return nil, fmt.Errorf("%w: checkOut must be after checkIn", ErrValidation)
	}
	if booking.Name == "" || booking.Mobile == "" {
		return nil, fmt.Errorf("%w: name and mobile are required", ErrValidation)
	}
	if req.NumberOfGuests < 1 {
		return nil, fmt.Errorf("%w: numberOfGuests must be at least 1", ErrValidation)
	}
	if req.Price < 0 || math.IsInf(req.Price, 0) || math.IsNaN(req.Price) {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	if !validID(req.PlaceID) {
		return nil, fmt.Errorf("%w: place %q", ErrNotFound, req.PlaceID)
	}
	place, err := s.placeRepo.GetByID(ctx, req.PlaceID)
	if err != nil {
		return nil, repoError(err)
	}

	booking.PlaceID = place.PlaceID
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	booking.Place = place
	return booking, nil
}

// ListMine returns the caller's bookings with their places attached. Deleting a
// place cascades to its bookings, so every booking has a place to attach.
func (s *bookingService) ListMine(ctx context.Context, userID string) ([]models.Booking, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if len(bookings) == 0 {
		return bookings, nil
	}

	ids := make([]string, 0, len(bookings))
	seen := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.PlaceID]; ok {
			continue
		}
		seen[b.PlaceID] = struct{}{}
		ids = append(ids, b.PlaceID)
	}

	places, err := s.placeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	byID := make(map[string]*models.Place, len(places))
	for i := range places {
		byID[places[i].PlaceID] = &places[i]
	}
	for i := range bookings {
		bookings[i].Place = byID[bookings[i].PlaceID]
	}

	return bookings, nil
}
