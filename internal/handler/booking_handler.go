package handlers

import (
	"net/http"

	"github.com/Chamas111/booking-airbnb/internal/service"
)

type BookingRequest struct {
	Place          string    `json:"place" validate:"required"`
	CheckIn        string    `json:"checkIn" validate:"required"`
	CheckOut       string    `json:"checkOut" validate:"required"`
	NumberOfGuests flexInt   `json:"numberOfGuests" validate:"gte=0,lte=1000"`
	Name           string    `json:"name" validate:"required,max=200"`
	Mobile         string    `json:"mobile" validate:"required,max=50"`
	Price          flexFloat `json:"price" validate:"gte=0,lte=9999999999.99"`
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateBody(w, req) {
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		WriteError(w, "checkIn must be a date", http.StatusUnprocessableEntity)
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		WriteError(w, "checkOut must be a date", http.StatusUnprocessableEntity)
		return
	}

	guests := int(req.NumberOfGuests)
	if guests == 0 {
		guests = 1
	}

	booking, err := h.BookingService.Create(r.Context(), callerID(r), service.BookingRequest{
		PlaceID:        req.Place,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: guests,
		Name:           req.Name,
		Mobile:         req.Mobile,
		Price:          float64(req.Price),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, booking, http.StatusOK)
}

func (h *Handlers) GetBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bookings, err := h.BookingService.ListMine(r.Context(), callerID(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, bookings, http.StatusOK)
}
