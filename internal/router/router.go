// Package router wires the HTTP surface: JSON endpoints for account and link
// management plus the public redirect. All domain decisions happen in the
// userdirectory and linkstore packages; handlers only decode, dispatch and
// map errors to statuses.
package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/tinylinks/internal/authenticator"
	"github.com/patric-chuzhbe/tinylinks/internal/gzippedhttp"
	"github.com/patric-chuzhbe/tinylinks/internal/linkstore"
	"github.com/patric-chuzhbe/tinylinks/internal/logger"
	"github.com/patric-chuzhbe/tinylinks/internal/models"
	"github.com/patric-chuzhbe/tinylinks/internal/session"
	"github.com/patric-chuzhbe/tinylinks/internal/user"
)

type userDirectory interface {
	Register(email, password string) (*user.User, error)
	Authenticate(email, password string) (*user.User, error)
}

type linkStore interface {
	Create(ownerID, targetURL string) (*linkstore.ShortLink, error)
	Resolve(token string) (string, error)
	Get(token, requesterID string) (*linkstore.ShortLink, error)
	Update(token, requesterID, newTargetURL string) error
	Delete(token, requesterID string) error
	LinksByOwner(ownerID string) map[string]*linkstore.ShortLink
}

// Router holds the handler dependencies.
type Router struct {
	users        userDirectory
	links        linkStore
	auth         authenticator.Authenticator
	shortURLBase string
	validate     *validator.Validate
}

// New assembles the chi mux with logging and session middleware attached.
func New(
	users userDirectory,
	links linkStore,
	auth authenticator.Authenticator,
	shortURLBase string,
) http.Handler {
	h := &Router{
		users:        users,
		links:        links,
		auth:         auth,
		shortURLBase: shortURLBase,
		validate:     validator.New(),
	}

	router := chi.NewRouter()
	router.Use(logger.WithLoggingHTTPMiddleware)
	router.Use(gzippedhttp.UngzipRequest)
	router.Use(gzippedhttp.GzipResponse)
	router.Use(auth.WithSession)

	router.Post(`/api/user/register`, h.PostRegister)
	router.Post(`/api/user/login`, h.PostLogin)
	router.Post(`/api/user/logout`, h.PostLogout)

	router.Group(func(router chi.Router) {
		router.Use(auth.RequireUser)
		router.Post(`/api/shorten`, h.PostShorten)
		router.Get(`/api/user/urls`, h.GetUserURLs)
		router.Get(`/api/user/urls/{token}`, h.GetUserURL)
		router.Put(`/api/user/urls/{token}`, h.PutUserURL)
		router.Delete(`/api/user/urls/{token}`, h.DeleteUserURL)
	})

	router.Get(`/{token}`, h.GetRedirectToTargetURL)

	return router
}

// PostRegister creates an account and opens a session for it.
func (h *Router) PostRegister(response http.ResponseWriter, request *http.Request) {
	req, ok := decodeAndValidate[models.AuthRequest](h, response, request)
	if !ok {
		return
	}

	usr, err := h.users.Register(req.Email, req.Password)
	if err != nil {
		h.writeDomainError(response, err)
		return
	}

	if err := h.auth.SetSessionCookie(response, usr.ID); err != nil {
		logger.Log.Errorw("Unable to set the session cookie", "error", err)
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.writeJSON(response, http.StatusCreated, models.AuthResponse{UserID: usr.ID})
}

// PostLogin verifies credentials and opens a session.
func (h *Router) PostLogin(response http.ResponseWriter, request *http.Request) {
	req, ok := decodeAndValidate[models.AuthRequest](h, response, request)
	if !ok {
		return
	}

	usr, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		h.writeDomainError(response, err)
		return
	}

	if err := h.auth.SetSessionCookie(response, usr.ID); err != nil {
		logger.Log.Errorw("Unable to set the session cookie", "error", err)
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.writeJSON(response, http.StatusOK, models.AuthResponse{UserID: usr.ID})
}

// PostLogout closes the session. It succeeds for anonymous clients too.
func (h *Router) PostLogout(response http.ResponseWriter, request *http.Request) {
	h.auth.ClearSessionCookie(response)
	response.WriteHeader(http.StatusNoContent)
}

// PostShorten creates a short link owned by the current user.
func (h *Router) PostShorten(response http.ResponseWriter, request *http.Request) {
	req, ok := decodeAndValidate[models.ShortenRequest](h, response, request)
	if !ok {
		return
	}

	userID, _ := session.FromContext(request.Context()).UserID()

	link, err := h.links.Create(userID, req.URL)
	if err != nil {
		h.writeDomainError(response, err)
		return
	}

	h.writeJSON(response, http.StatusCreated, models.ShortenResponse{
		Result: h.shortURL(link.Token),
	})
}

// GetUserURLs lists the links owned by the current user.
func (h *Router) GetUserURLs(response http.ResponseWriter, request *http.Request) {
	userID, _ := session.FromContext(request.Context()).UserID()

	links := h.links.LinksByOwner(userID)
	result := funk.Map(
		links,
		func(token string, link *linkstore.ShortLink) models.UserLink {
			return models.UserLink{
				Token:       token,
				ShortURL:    h.shortURL(token),
				OriginalURL: link.TargetURL,
			}
		},
	).([]models.UserLink)

	h.writeJSON(response, http.StatusOK, models.UserLinks(result))
}

// GetUserURL returns one link to its owner.
func (h *Router) GetUserURL(response http.ResponseWriter, request *http.Request) {
	userID, _ := session.FromContext(request.Context()).UserID()

	link, err := h.links.Get(chi.URLParam(request, "token"), userID)
	if err != nil {
		h.writeDomainError(response, err)
		return
	}

	h.writeJSON(response, http.StatusOK, models.UserLink{
		Token:       link.Token,
		ShortURL:    h.shortURL(link.Token),
		OriginalURL: link.TargetURL,
	})
}

// PutUserURL replaces the target URL of an owned link.
func (h *Router) PutUserURL(response http.ResponseWriter, request *http.Request) {
	req, ok := decodeAndValidate[models.UpdateLinkRequest](h, response, request)
	if !ok {
		return
	}

	userID, _ := session.FromContext(request.Context()).UserID()

	if err := h.links.Update(chi.URLParam(request, "token"), userID, req.URL); err != nil {
		h.writeDomainError(response, err)
		return
	}

	response.WriteHeader(http.StatusOK)
}

// DeleteUserURL removes an owned link.
func (h *Router) DeleteUserURL(response http.ResponseWriter, request *http.Request) {
	userID, _ := session.FromContext(request.Context()).UserID()

	if err := h.links.Delete(chi.URLParam(request, "token"), userID); err != nil {
		h.writeDomainError(response, err)
		return
	}

	response.WriteHeader(http.StatusNoContent)
}

// GetRedirectToTargetURL is the public redirect. No session is consulted.
func (h *Router) GetRedirectToTargetURL(response http.ResponseWriter, request *http.Request) {
	targetURL, err := h.links.Resolve(chi.URLParam(request, "token"))
	if err != nil {
		h.writeDomainError(response, err)
		return
	}

	http.Redirect(response, request, targetURL, http.StatusTemporaryRedirect)
}

func (h *Router) shortURL(token string) string {
	return h.shortURLBase + "/" + token
}

func decodeAndValidate[T any](
	h *Router,
	response http.ResponseWriter,
	request *http.Request,
) (T, bool) {
	var req T
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil {
		http.Error(response, "invalid JSON body", http.StatusBadRequest)
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(response, models.ErrInvalidInput.Error(), http.StatusBadRequest)
		return req, false
	}

	return req, true
}

func (h *Router) writeJSON(response http.ResponseWriter, status int, body any) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(body); err != nil {
		logger.Log.Errorw("Unable to encode the response body", "error", err)
	}
}

// writeDomainError maps a domain error to an HTTP status. Forbidden collapses
// into the same 404 as a missing token so the existence of foreign-owned
// links never leaks to non-owners.
func (h *Router) writeDomainError(response http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(response, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrEmailTaken):
		http.Error(response, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrUnknownEmail),
		errors.Is(err, models.ErrWrongPassword):
		// One fixed body for both failure modes, so login responses never
		// reveal which emails are registered.
		http.Error(response, "invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrForbidden):
		http.Error(response, models.ErrNotFound.Error(), http.StatusNotFound)
	default:
		// Covers models.ErrInvalidOwner: a session referencing a user the
		// directory does not know is a consistency violation.
		logger.Log.Errorw("Unexpected domain error", "error", err)
		response.WriteHeader(http.StatusInternalServerError)
	}
}
