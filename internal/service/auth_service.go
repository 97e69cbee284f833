package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/repository"
	"github.com/Chamas111/booking-airbnb/internal/session"
	"github.com/rs/zerolog"
)

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*session.Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	codec    *session.Codec
	denyList session.DenyList
	logger   zerolog.Logger
}

// NewAuthService wires the auth flows. denyList may be nil, in which case logout
// only clears the cookie.
func NewAuthService(userRepo repository.UserRepository, codec *session.Codec, denyList session.DenyList, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		denyList: denyList,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	user := &models.User{
		Name:  name,
		Email: email,
	}

	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		}
		return nil, fmt.Errorf("%w: register: %w", ErrInternal, err)
	}

	return user, nil
}

// Login returns the user and a freshly signed session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, normalizeEmail(email), password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrPasswordMismatch) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%w: login: %w", ErrInternal, err)
	}

	token, _, err := s.codec.Sign(user.UserID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, token, nil
}

// Logout is idempotent. Without a deny-list there is nothing to do server side.
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.denyList == nil || token == "" {
		return nil
	}

	claims, err := s.codec.Parse(token)
	if err != nil {
		return nil
	}

	if err := s.denyList.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

// Profile never fails for a missing or bad session, it returns a nil user instead.
func (s *authService) Profile(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: profile: %w", ErrInternal, err)
	}

	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*session.Claims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.codec.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if s.denyList != nil {
		revoked, err := s.denyList.IsRevoked(ctx, claims.ID)
		if err != nil {
			// fail open: the signature and expiry already checked out
			s.logger.Warn().Err(err).Str("jti", claims.ID).Msg("session deny-list unavailable")
		} else if revoked {
			return nil, ErrUnauthenticated
		}
	}

	return claims, nil
}
