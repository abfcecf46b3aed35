// Package linkstore implements the in-memory table of short links with owner
// attribution and the token generator backing it.
package linkstore

import (
	"crypto/rand"
	"math/big"
	"sync"

	"github.com/patric-chuzhbe/tinylinks/internal/access"
	"github.com/patric-chuzhbe/tinylinks/internal/models"
	"github.com/patric-chuzhbe/tinylinks/internal/user"
)

// TokenLength is the fixed length of a short link token.
const TokenLength = 6

// tokenAlphabet is the 62-symbol alphabet tokens are sampled from.
const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type ownerDirectory interface {
	FindByID(id string) (*user.User, bool)
}

// ShortLink maps a token to its target URL. OwnerID references a user in the
// directory; it is set at creation and never changes.
type ShortLink struct {
	Token     string
	TargetURL string
	OwnerID   string
}

// Store is the short link table, safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	links  map[string]*ShortLink
	owners ownerDirectory
}

// New returns an empty store that validates owners against the given
// directory at link creation time.
func New(owners ownerDirectory) *Store {
	return &Store{
		links:  map[string]*ShortLink{},
		owners: owners,
	}
}

// Create generates a fresh unique token for targetURL and records ownerID as
// its owner. It returns models.ErrInvalidInput when targetURL is empty and
// models.ErrInvalidOwner when ownerID does not resolve to a registered user.
func (s *Store) Create(ownerID, targetURL string) (*ShortLink, error) {
	if targetURL == "" {
		return nil, models.ErrInvalidInput
	}

	if _, found := s.owners.FindByID(ownerID); !found {
		return nil, models.ErrInvalidOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The uniqueness check and the insert stay inside one critical section,
	// otherwise two concurrent creations could pick the same token.
	var token string
	for {
		candidate, err := randomToken()
		if err != nil {
			return nil, err
		}
		if _, exists := s.links[candidate]; !exists {
			token = candidate
			break
		}
	}

	link := &ShortLink{
		Token:     token,
		TargetURL: targetURL,
		OwnerID:   ownerID,
	}
	s.links[token] = link

	cp := *link

	return &cp, nil
}

// Resolve returns the target URL for a token. This is the public redirect
// path: no ownership check is applied. Absent tokens yield models.ErrNotFound.
func (s *Store) Resolve(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, found := s.links[token]
	if !found {
		return "", models.ErrNotFound
	}

	return link.TargetURL, nil
}

// Get returns the link for a token to its owner. It returns models.ErrNotFound
// when the token is absent and models.ErrForbidden when requesterID is not
// the owner.
func (s *Store) Get(token, requesterID string) (*ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, found := s.links[token]
	if !found {
		return nil, models.ErrNotFound
	}
	if !access.Permit(requesterID, link.OwnerID) {
		return nil, models.ErrForbidden
	}

	cp := *link

	return &cp, nil
}

// Update replaces the target URL of an owned link in place. The ownership
// gate is the same as for Get.
func (s *Store) Update(token, requesterID, newTargetURL string) error {
	if newTargetURL == "" {
		return models.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, found := s.links[token]
	if !found {
		return models.ErrNotFound
	}
	if !access.Permit(requesterID, link.OwnerID) {
		return models.ErrForbidden
	}

	link.TargetURL = newTargetURL

	return nil
}

// Delete removes an owned link. The ownership gate is the same as for Get.
func (s *Store) Delete(token, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, found := s.links[token]
	if !found {
		return models.ErrNotFound
	}
	if !access.Permit(requesterID, link.OwnerID) {
		return models.ErrForbidden
	}

	delete(s.links, token)

	return nil
}

// LinksByOwner returns the links owned by ownerID keyed by token. Unknown or
// anonymous owners get an empty map, never an error.
func (s *Store) LinksByOwner(ownerID string) map[string]*ShortLink {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := map[string]*ShortLink{}
	for token, link := range s.links {
		if link.OwnerID == ownerID {
			cp := *link
			result[token] = &cp
		}
	}

	return result
}

// randomToken samples TokenLength symbols uniformly from tokenAlphabet using
// crypto/rand.
func randomToken() (string, error) {
	token := make([]byte, TokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range token {
		index, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = tokenAlphabet[index.Int64()]
	}

	return string(token), nil
}
