package handlers

import (
	"reflect"
	"strings"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// perkTag validates a perk against models.Perks.
const perkTag = "perk"

// HealthChecker is satisfied by *database.DB.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService    service.AuthService
	PlaceService   service.PlaceService
	BookingService service.BookingService
	PhotoService   service.PhotoService
	DB             HealthChecker
	Cfg            *config.Config
	Validate       *validator.Validate
	Logger         zerolog.Logger
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PlaceService:   service.Place,
		BookingService: service.Booking,
		PhotoService:   service.Photo,
		DB:             db,
		Cfg:            config,
		Validate:       NewValidator(),
		Logger:         logger,
	}
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(perkTag, func(fl validator.FieldLevel) bool {
		return models.IsPerk(fl.Field().String())
	})
	return v
}
