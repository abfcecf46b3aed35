package userdirectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/tinylinks/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	directory := New()

	registered, err := directory.Register("a@x.com", "pw1")
	require.NoError(t, err)
	require.NotNil(t, registered)

	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "a@x.com", registered.Email)
	assert.NotEqual(t, "pw1", registered.PasswordHash, "The plaintext password must not be stored")

	authenticated, err := directory.Authenticate("a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authenticated.ID)
}

func TestRegisterValidation(t *testing.T) {
	directory := New()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "pw"},
		{name: "empty password", email: "a@x.com", password: ""},
		{name: "both empty", email: "", password: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := directory.Register(test.email, test.password)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	directory := New()

	_, err := directory.Register("x@x.com", "p")
	require.NoError(t, err)

	_, err = directory.Register("x@x.com", "q")
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestRegisterEmailComparisonIsCaseSensitive(t *testing.T) {
	directory := New()

	_, err := directory.Register("user@x.com", "p")
	require.NoError(t, err)

	_, err = directory.Register("User@x.com", "p")
	assert.NoError(t, err, "Emails differing only in case are distinct accounts")
}

func TestAuthenticateFailures(t *testing.T) {
	directory := New()

	_, err := directory.Register("a@x.com", "pw1")
	require.NoError(t, err)

	_, err = directory.Authenticate("a@x.com", "wrong")
	assert.ErrorIs(t, err, models.ErrWrongPassword)

	_, err = directory.Authenticate("nobody@x.com", "pw1")
	assert.ErrorIs(t, err, models.ErrUnknownEmail)
}

func TestFindLookups(t *testing.T) {
	directory := New()

	registered, err := directory.Register("a@x.com", "pw1")
	require.NoError(t, err)

	byID, found := directory.FindByID(registered.ID)
	require.True(t, found)
	assert.Equal(t, registered.Email, byID.Email)

	byEmail, found := directory.FindByEmail("a@x.com")
	require.True(t, found)
	assert.Equal(t, registered.ID, byEmail.ID)

	_, found = directory.FindByID("no-such-id")
	assert.False(t, found)

	_, found = directory.FindByEmail("no@such.email")
	assert.False(t, found)
}

func TestRegisteredIDsAreUnique(t *testing.T) {
	directory := New()

	seen := map[string]bool{}
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		registered, err := directory.Register(email, "pw")
		require.NoError(t, err)
		assert.False(t, seen[registered.ID], "User id %q issued twice", registered.ID)
		seen[registered.ID] = true
	}
}
