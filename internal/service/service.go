package service

import (
	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/Chamas111/booking-airbnb/internal/repository"
	"github.com/Chamas111/booking-airbnb/internal/session"
	"github.com/Chamas111/booking-airbnb/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	Auth    AuthService
	Place   PlaceService
	Booking BookingService
	Photo   PhotoService
}

type Deps struct {
	Repo     *repository.Repository
	Config   *config.Config
	Storage  storage.Storage
	Codec    *session.Codec
	DenyList session.DenyList
	Fetcher  Fetcher
	Logger   zerolog.Logger
}

func NewService(d Deps) *Service {
	fetcher := d.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(d.Config.Upload.FetchTimeout, d.Config.Upload.MaxFileSize)
	}

	return &Service{
		Auth:    NewAuthService(d.Repo.User, d.Codec, d.DenyList, d.Logger),
		Place:   NewPlaceService(d.Repo.Place),
		Booking: NewBookingService(d.Repo.Booking, d.Repo.Place),
		Photo:   NewPhotoService(d.Storage, fetcher, d.Config.Upload, d.Logger),
	}
}

// validID reports whether id can name a stored row. Anything else cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
