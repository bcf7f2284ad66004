package model

import "time"

// Contact is a stored address-book entry. Preference flags record how the
// person agreed to be reached; Spam is a one-way marker that is set via the
// spam action and never cleared through the web surface.
type Contact struct {
	ID             int64     `db:"id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	PhoneNumber    string    `db:"phone_number"`
	Email          string    `db:"email"`
	Street         string    `db:"street"`
	City           string    `db:"city"`
	State          string    `db:"state"`
	Zip            string    `db:"zip"`
	Country        string    `db:"country"`
	ContactByEmail bool      `db:"contact_by_email"`
	ContactByPhone bool      `db:"contact_by_phone"`
	Spam           bool      `db:"spam"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Address returns the postal address as a single line, skipping empty parts.
func (c Contact) Address() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.Street, c.City, c.State, c.Zip, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
