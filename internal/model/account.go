package model

import "time"

// Account represents a login account that can create and modify contacts.
// Passwords are stored as bcrypt hashes.
type Account struct {
	ID           int64     `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"` // bcrypt hash, never expose
	CreatedAt    time.Time `db:"created_at"`
}

// DisplayName returns the account's human-readable name, falling back to
// the username when no name was captured at signup.
func (a Account) DisplayName() string {
	if a.FirstName == "" && a.LastName == "" {
		return a.Username
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
