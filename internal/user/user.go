// Package user defines the user model used throughout the application,
// particularly for authentication and user-specific link ownership.
package user

// User represents a registered account.
type User struct {
	// ID is the unique identifier of the user, meaning a UUID.
	ID string

	// Email is the registration email, matched case-sensitively and unique
	// across the directory.
	Email string

	// PasswordHash is the bcrypt hash of the account password. The plaintext
	// password is never stored.
	PasswordHash string
}
