// Package auth provides middleware and helpers for JWT-based authentication
// and user identification in HTTP requests. It supports cookie-based or
// Authorization header-based token parsing.
//
// The package is pure transport: it serializes the request session into a
// signed cookie and back. All identity decisions belong to the session and
// access packages.
package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v4"

	"github.com/patric-chuzhbe/tinylinks/internal/logger"
	"github.com/patric-chuzhbe/tinylinks/internal/session"
	"github.com/patric-chuzhbe/tinylinks/internal/user"
)

type userFinder interface {
	FindByID(id string) (*user.User, bool)
}

// Auth handles session cookie issuance and verification.
type Auth struct {
	users      userFinder
	cookieName string
	signingKey []byte
}

// Claims represents the JWT claims used by the system.
// It embeds standard JWT claims and adds a user-specific identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// New creates an Auth handler with the given user lookup, cookie name and
// JWT signing secret.
func New(users userFinder, cookieName string, signingKey []byte) *Auth {
	return &Auth{
		users:      users,
		cookieName: cookieName,
		signingKey: signingKey,
	}
}

// SetSessionCookie issues a signed token for userID and attaches it to the
// response as a cookie and an Authorization header.
func (a *Auth) SetSessionCookie(response http.ResponseWriter, userID string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})

	tokenString, err := token.SignedString(a.signingKey)
	if err != nil {
		return err
	}

	response.Header().Set("Authorization", tokenString)
	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.cookieName,
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
		},
	)

	return nil
}

// ClearSessionCookie expires the session cookie, returning the client to the
// anonymous state.
func (a *Auth) ClearSessionCookie(response http.ResponseWriter) {
	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		},
	)
}

// WithSession is an HTTP middleware that materializes the request session
// from the Authorization header or the session cookie. Requests without a
// valid token, and tokens referencing unregistered users (for example after
// a restart wiped the in-memory state), proceed with an anonymous session.
func (a *Auth) WithSession(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		sess := session.New()

		if userID := a.userIDFromRequest(request); userID != "" {
			if _, found := a.users.FindByID(userID); found {
				sess.SetUser(userID)
			} else {
				logger.Log.Debugw("session token references unknown user",
					"user_id", userID)
			}
		}

		ctx := session.NewContext(request.Context(), sess)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

// RequireUser is an HTTP middleware that rejects anonymous requests with
// 401 before the wrapped handler runs. It must wrap every route that mutates
// or lists user-owned links.
func (a *Auth) RequireUser(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if _, ok := session.FromContext(request.Context()).UserID(); !ok {
			http.Error(response, "authentication required", http.StatusUnauthorized)
			return
		}

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}

func (a *Auth) tokenStringFromRequest(request *http.Request) string {
	tokenString := request.Header.Get("Authorization")
	if tokenString != "" {
		return tokenString
	}

	cookie, err := request.Cookie(a.cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (a *Auth) userIDFromRequest(request *http.Request) string {
	tokenString := a.tokenStringFromRequest(request)
	if tokenString == "" {
		return ""
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.signingKey, nil
		},
	)
	if err != nil || !token.Valid {
		return ""
	}

	return claims.UserID
}
