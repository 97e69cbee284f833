package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PlaceRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPlaceRepository(db *sqlx.DB) *PlaceRepositoryImpl {
	return &PlaceRepositoryImpl{DB: db}
}

func (r *PlaceRepositoryImpl) Create(ctx context.Context, place *models.Place) error {
	query := `
		INSERT INTO places
		(place_id, owner_id, title, address, photos, description, perks, extra_info,
		 check_in, check_out, max_guests, price, created_at, updated_at)
		VALUES
		(:place_id, :owner_id, :title, :address, :photos, :description, :perks, :extra_info,
		 :check_in, :check_out, :max_guests, :price, :created_at, :updated_at)
	`

	if place.PlaceID == "" {
		place.PlaceID = uuid.New().String()
	}
	normalizeArrays(place)

	now := time.Now()
	place.CreatedAt = now
	place.UpdatedAt = now

	_, err := r.DB.NamedExecContext(ctx, query, place)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	return nil
}

func (r *PlaceRepositoryImpl) GetByID(ctx context.Context, placeID string) (*models.Place, error) {
	query := `SELECT * FROM places WHERE place_id = $1`

	var place models.Place
	err := r.DB.GetContext(ctx, &place, query, placeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("place %s: %w", placeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	return &place, nil
}

func (r *PlaceRepositoryImpl) GetByIDs(ctx context.Context, placeIDs []string) ([]models.Place, error) {
	places := []models.Place{}
	if len(placeIDs) == 0 {
		return places, nil
	}

	query := `SELECT * FROM places WHERE place_id = ANY($1)`

	err := r.DB.SelectContext(ctx, &places, query, pq.Array(placeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get places: %w", err)
	}

	return places, nil
}

// GetAll returns places newest first. limit <= 0 means no limit.
func (r *PlaceRepositoryImpl) GetAll(ctx context.Context, limit, offset int) ([]models.Place, error) {
	places := []models.Place{}

	var err error
	if limit > 0 {
		query := `SELECT * FROM places ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		err = r.DB.SelectContext(ctx, &places, query, limit, offset)
	} else {
		query := `SELECT * FROM places ORDER BY created_at DESC`
		err = r.DB.SelectContext(ctx, &places, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

func (r *PlaceRepositoryImpl) GetByOwnerID(ctx context.Context, ownerID string) ([]models.Place, error) {
	query := `SELECT * FROM places WHERE owner_id = $1 ORDER BY created_at DESC`

	places := []models.Place{}
	err := r.DB.SelectContext(ctx, &places, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list places of owner %s: %w", ownerID, err)
	}

	return places, nil
}

func (r *PlaceRepositoryImpl) ListWithoutPhotos(ctx context.Context) ([]models.Place, error) {
	query := `SELECT * FROM places WHERE cardinality(photos) = 0 ORDER BY created_at`

	places := []models.Place{}
	err := r.DB.SelectContext(ctx, &places, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list places without photos: %w", err)
	}

	return places, nil
}

// Update overwrites every mutable field. The owner is part of the filter, so a
// row owned by someone else is reported as not found.
func (r *PlaceRepositoryImpl) Update(ctx context.Context, place *models.Place) error {
	query := `
		UPDATE places SET
			title = :title,
			address = :address,
			photos = :photos,
			description = :description,
			perks = :perks,
			extra_info = :extra_info,
			check_in = :check_in,
			check_out = :check_out,
			max_guests = :max_guests,
			price = :price,
			updated_at = :updated_at
		WHERE place_id = :place_id AND owner_id = :owner_id
	`

	normalizeArrays(place)
	place.UpdatedAt = time.Now()

	result, err := r.DB.NamedExecContext(ctx, query, place)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("place %s: %w", place.PlaceID, ErrNotFound)
	}

	return nil
}

func (r *PlaceRepositoryImpl) Delete(ctx context.Context, placeID, ownerID string) error {
	query := `DELETE FROM places WHERE place_id = $1 AND owner_id = $2`

	result, err := r.DB.ExecContext(ctx, query, placeID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("place %s: %w", placeID, ErrNotFound)
	}

	return nil
}

// nil arrays would be written as NULL into NOT NULL columns.
func normalizeArrays(place *models.Place) {
	if place.Photos == nil {
		place.Photos = pq.StringArray{}
	}
	if place.Perks == nil {
		place.Perks = pq.StringArray{}
	}
}
