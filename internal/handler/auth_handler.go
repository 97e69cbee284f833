package handlers

import (
	"net/http"

	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/Chamas111/booking-airbnb/internal/session"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) cookieOptions() session.CookieOptions {
	return session.CookieOptions{
		Secure:   h.Cfg.Session.CookieSecure,
		SameSite: h.Cfg.Session.SameSite,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateBody(w, req) {
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, service.ErrInvalidCredentials.Error(), http.StatusUnprocessableEntity)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	session.SetCookie(w, token, h.Cfg.Session.TTL, h.cookieOptions())
	writeJSON(w, user, http.StatusOK)
}

// Logout always clears the cookie and answers true.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.AuthService.Logout(r.Context(), session.TokenFromRequest(r)); err != nil {
		h.Logger.Warn().Err(err).Msg("failed to revoke session")
	}

	session.ClearCookie(w, h.cookieOptions())
	writeJSON(w, true, http.StatusOK)
}

// Profile answers null rather than 401 for anonymous callers.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := h.AuthService.Profile(r.Context(), session.TokenFromRequest(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if user == nil {
		writeJSON(w, nil, http.StatusOK)
		return
	}
	writeJSON(w, user, http.StatusOK)
}
