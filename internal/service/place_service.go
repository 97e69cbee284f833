package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/repository"
	"github.com/lib/pq"
)

// PlaceRequest carries the owner editable fields of a place.
type PlaceRequest struct {
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       float64
}

type PlaceService interface {
	Create(ctx context.Context, ownerID string, req PlaceRequest) (*models.Place, error)
	Update(ctx context.Context, callerID, placeID string, req PlaceRequest) (*models.Place, error)
	GetByID(ctx context.Context, placeID string) (*models.Place, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Place, error)
	ListOwnedBy(ctx context.Context, ownerID string) ([]models.Place, error)
	Delete(ctx context.Context, callerID, placeID string) error
}

type placeService struct {
	placeRepo repository.PlaceRepository
}

func NewPlaceService(placeRepo repository.PlaceRepository) PlaceService {
	return &placeService{placeRepo: placeRepo}
}

func (req PlaceRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.MaxGuests < 0 {
		return fmt.Errorf("%w: maxGuests must not be negative", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if math.IsInf(req.Price, 0) || math.IsNaN(req.Price) {
		return fmt.Errorf("%w: price must be a finite number", ErrValidation)
	}
	return nil
}

// apply overwrites every mutable field. Photo order is kept as sent, the first
// photo being the cover.
func (req PlaceRequest) apply(place *models.Place) {
	place.Title = strings.TrimSpace(req.Title)
	place.Address = req.Address
	place.Photos = pq.StringArray(nonEmpty(req.Photos))
	place.Description = req.Description
	place.Perks = pq.StringArray(uniqueStrings(req.Perks))
	place.ExtraInfo = req.ExtraInfo
	place.CheckIn = req.CheckIn
	place.CheckOut = req.CheckOut
	place.MaxGuests = req.MaxGuests
	place.Price = req.Price
}

func (s *placeService) Create(ctx context.Context, ownerID string, req PlaceRequest) (*models.Place, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	place := &models.Place{OwnerID: ownerID}
	req.apply(place)

	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return place, nil
}

func (s *placeService) Update(ctx context.Context, callerID, placeID string, req PlaceRequest) (*models.Place, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	place, err := s.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if place.OwnerID != callerID {
		return nil, fmt.Errorf("%w: place %s belongs to another user", ErrForbidden, placeID)
	}

	if err := req.validate(); err != nil {
		return nil, err
	}
	req.apply(place)

	// concurrent edits are last-write-wins
	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, repoError(err)
	}

	return place, nil
}

func (s *placeService) GetByID(ctx context.Context, placeID string) (*models.Place, error) {
	if !validID(placeID) {
		return nil, fmt.Errorf("%w: place %q", ErrNotFound, placeID)
	}

	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return nil, repoError(err)
	}

	return place, nil
}

// ListAll returns every place, newest first. limit <= 0 disables pagination.
func (s *placeService) ListAll(ctx context.Context, limit, offset int) ([]models.Place, error) {
	if offset < 0 {
		offset = 0
	}

	places, err := s.placeRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return places, nil
}

func (s *placeService) ListOwnedBy(ctx context.Context, ownerID string) ([]models.Place, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	places, err := s.placeRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return places, nil
}

func (s *placeService) Delete(ctx context.Context, callerID, placeID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}

	place, err := s.GetByID(ctx, placeID)
	if err != nil {
		return err
	}

	if place.OwnerID != callerID {
		return fmt.Errorf("%w: place %s belongs to another user", ErrForbidden, placeID)
	}

	if err := s.placeRepo.Delete(ctx, placeID, callerID); err != nil {
		return repoError(err)
	}

	return nil
}

func repoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// uniqueStrings drops blanks and repeats while keeping first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range nonEmpty(values) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
