// Package session models the per-request identity cell: either anonymous or
// authenticated as a single user id. The cookie transport that persists the
// cell between requests lives in the auth package; handlers only see this API.
package session

import "context"

// Session is the identity state of one request. The zero value is anonymous.
type Session struct {
	userID string
}

// New returns an anonymous session.
func New() *Session {
	return &Session{}
}

// SetUser moves the session to the authenticated state for the given user id.
func (s *Session) SetUser(id string) {
	s.userID = id
}

// Clear moves the session back to the anonymous state. Logout itself happens
// at the cookie transport (the auth package expires the cookie); Clear covers
// in-process transitions on an already materialized session.
func (s *Session) Clear() {
	s.userID = ""
}

// UserID returns the authenticated user id and true, or "" and false when the
// session is anonymous.
func (s *Session) UserID() (string, bool) {
	return s.userID, s.userID != ""
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the request session. A request that never passed
// through the auth middleware yields an anonymous session.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok {
		return s
	}
	return New()
}
