package service

import "errors"

// Error kinds surfaced to the HTTP layer. Services wrap them with context using
// fmt.Errorf and handlers map them to status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUnauthenticated    = errors.New("Not logged in")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrFetch              = errors.New("Cannot download image from provided link")
	ErrStorage            = errors.New("photo storage failed")
	ErrInternal           = errors.New("internal error")
)
