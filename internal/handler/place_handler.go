package handlers

import (
	"net/http"
	"strconv"

	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/Chamas111/booking-airbnb/internal/session"
	"github.com/gorilla/mux"
)

type PlaceRequest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required,max=200"`
	Address     string     `json:"address" validate:"required,max=500"`
	Photos      []string   `json:"photos" validate:"max=100,dive,required,max=2048"`
	AddedPhotos []string   `json:"addedPhotos" validate:"max=100,dive,required,max=2048"`
	Description string     `json:"description" validate:"max=10000"`
	Perks       []string   `json:"perks" validate:"dive,perk"`
	ExtraInfo   string     `json:"extraInfo" validate:"max=10000"`
	CheckIn     flexString `json:"checkIn" validate:"max=32"`
	CheckOut    flexString `json:"checkOut" validate:"max=32"`
	MaxGuests   flexInt    `json:"maxGuests" validate:"gte=0,lte=1000"`
	Price       flexFloat  `json:"price" validate:"gte=0,lte=9999999999.99"`
}

// toService prefers photos; addedPhotos is what older clients send.
func (p PlaceRequest) toService() service.PlaceRequest {
	photos := p.Photos
	if photos == nil {
		photos = p.AddedPhotos
	}

	return service.PlaceRequest{
		Title:       p.Title,
		Address:     p.Address,
		Photos:      photos,
		Description: p.Description,
		Perks:       p.Perks,
		ExtraInfo:   p.ExtraInfo,
		CheckIn:     string(p.CheckIn),
		CheckOut:    string(p.CheckOut),
		MaxGuests:   int(p.MaxGuests),
		Price:       float64(p.Price),
	}
}

func callerID(r *http.Request) string {
	if claims, ok := session.UserFromContext(r.Context()); ok {
		return claims.UserID
	}
	return ""
}

func (h *Handlers) CreatePlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateBody(w, req) {
		return
	}

	place, err := h.PlaceService.Create(r.Context(), callerID(r), req.toService())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, place, http.StatusOK)
}

// UpdatePlace takes the place id from the body and answers "ok".
func (h *Handlers) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		WriteError(w, "id is required", http.StatusUnprocessableEntity)
		return
	}
	if !h.validateBody(w, req) {
		return
	}

	if _, err := h.PlaceService.Update(r.Context(), callerID(r), req.ID, req.toService()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, "ok", http.StatusOK)
}

// GetPlaces lists every place. ?limit=&offset= paginate when given.
func (h *Handlers) GetPlaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 0 || limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	places, err := h.PlaceService.ListAll(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, places, http.StatusOK)
}

func (h *Handlers) GetPlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	place, err := h.PlaceService.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, place, http.StatusOK)
}

func (h *Handlers) GetUserPlaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	places, err := h.PlaceService.ListOwnedBy(r.Context(), callerID(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, places, http.StatusOK)
}

func (h *Handlers) DeleteUserPlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.PlaceService.Delete(r.Context(), callerID(r), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, "ok", http.StatusOK)
}
