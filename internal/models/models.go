// Package models defines the request/response DTOs of the HTTP API and the
// domain error values shared by the storage and service layers.
package models

import "errors"

// Domain errors. Handlers match them with errors.Is and map them to HTTP
// statuses; nothing below the router layer knows about HTTP.
var (
	// ErrInvalidInput is returned when a required field is empty or absent.
	ErrInvalidInput = errors.New("required field is missing")

	// ErrEmailTaken is returned on registration with an already registered email.
	ErrEmailTaken = errors.New("email address already registered")

	// ErrUnknownEmail is returned on login with an unregistered email.
	ErrUnknownEmail = errors.New("invalid email address")

	// ErrWrongPassword is returned on login when the password does not match
	// the stored hash.
	ErrWrongPassword = errors.New("invalid password")

	// ErrNotFound is returned when no short link exists for a token.
	ErrNotFound = errors.New("short link not found")

	// ErrForbidden is returned when the requester is not the owner of the link.
	ErrForbidden = errors.New("short link belongs to another user")

	// ErrInvalidOwner means a link creation referenced a nonexistent user.
	// A session pointing at an unregistered user id is a consistency
	// violation, not a user mistake, so the router reports it as internal.
	ErrInvalidOwner = errors.New("owner does not exist")
)

// AuthRequest is the body of both the register and the login endpoints.
type AuthRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the id of the registered or authenticated user.
type AuthResponse struct {
	UserID string `json:"user_id"`
}

// ShortenRequest is the body of the shorten endpoint.
type ShortenRequest struct {
	URL string `json:"url" validate:"required"`
}

// ShortenResponse carries the resulting short URL.
type ShortenResponse struct {
	Result string `json:"result"`
}

// UpdateLinkRequest is the body of the link update endpoint.
type UpdateLinkRequest struct {
	URL string `json:"url" validate:"required"`
}

// UserLink is one element of the authenticated user's link listing and the
// body of the single-link endpoint.
type UserLink struct {
	Token       string `json:"token"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// UserLinks is the response of the link listing endpoint.
type UserLinks []UserLink
