// Package authenticator declares the session transport contract the router
// depends on, so handler tests can substitute a stub for the JWT implementation.
package authenticator

import "net/http"

// Authenticator is implemented by the auth package.
type Authenticator interface {
	WithSession(h http.Handler) http.Handler
	RequireUser(h http.Handler) http.Handler
	SetSessionCookie(response http.ResponseWriter, userID string) error
	ClearSessionCookie(response http.ResponseWriter)
}
