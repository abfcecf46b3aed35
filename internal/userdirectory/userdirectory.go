// Package userdirectory implements the in-memory registry of accounts.
// It owns user records exclusively: registration is the only way in, and no
// delete or profile-edit path exists.
package userdirectory

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/patric-chuzhbe/tinylinks/internal/models"
	"github.com/patric-chuzhbe/tinylinks/internal/user"
)

// Directory is the user table, safe for concurrent use.
type Directory struct {
	mu   sync.RWMutex
	byID map[string]*user.User
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{
		byID: map[string]*user.User{},
	}
}

// Register creates an account. It returns models.ErrInvalidInput when email
// or password is empty and models.ErrEmailTaken when the email is already
// registered (case-sensitive comparison). The password is stored only as a
// bcrypt hash.
func (d *Directory) Register(email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, models.ErrInvalidInput
	}

	// bcrypt is deliberately slow, keep it outside the critical section.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, found := d.findByEmailLocked(email); found {
		return nil, models.ErrEmailTaken
	}

	id := uuid.New().String()
	for _, exists := d.byID[id]; exists; _, exists = d.byID[id] {
		id = uuid.New().String()
	}

	usr := &user.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
	}
	d.byID[id] = usr

	return usr, nil
}

// Authenticate verifies the credentials of a registered user. It returns
// models.ErrUnknownEmail when no account has the email and
// models.ErrWrongPassword when the password does not match the stored hash.
func (d *Directory) Authenticate(email, password string) (*user.User, error) {
	d.mu.RLock()
	usr, found := d.findByEmailLocked(email)
	d.mu.RUnlock()

	if !found {
		return nil, models.ErrUnknownEmail
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(usr.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, models.ErrWrongPassword
	}

	return usr, nil
}

// FindByID returns the user with the given id, if any.
func (d *Directory) FindByID(id string) (*user.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	usr, found := d.byID[id]

	return usr, found
}

// FindByEmail returns the user registered with the given email, if any.
func (d *Directory) FindByEmail(email string) (*user.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.findByEmailLocked(email)
}

// findByEmailLocked scans the table linearly. Fine at this scale; an email
// index would be a drop-in refinement.
func (d *Directory) findByEmailLocked(email string) (*user.User, bool) {
	for _, usr := range d.byID {
		if usr.Email == email {
			return usr, true
		}
	}

	return nil, false
}
