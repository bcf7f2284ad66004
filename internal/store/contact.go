package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rolodex/rolodex/internal/model"
)

// CreateContact inserts a new contact. The ID, CreatedAt, and UpdatedAt
// fields on c are populated after a successful insert.
func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	const q = `INSERT INTO contacts
		(first_name, last_name, phone_number, email, street, city, state, zip, country,
		 contact_by_email, contact_by_phone, spam, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	err := s.db.QueryRowContext(ctx, s.db.Rebind(q),
		c.FirstName, c.LastName, c.PhoneNumber, c.Email,
		c.Street, c.City, c.State, c.Zip, c.Country,
		c.ContactByEmail, c.ContactByPhone, c.Spam,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetContact returns a contact by ID, or ErrNotFound.
func (s *Store) GetContact(ctx context.Context, id int64) (*model.Contact, error) {
	var c model.Contact
	q := s.db.Rebind("SELECT * FROM contacts WHERE id = ?")
	if err := s.db.GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// ListContacts returns all contacts in id order.
func (s *Store) ListContacts(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := s.db.SelectContext(ctx, &contacts, "SELECT * FROM contacts ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact overwrites all mutable fields of the contact matching c.ID.
// There are no partial-update semantics; an edit always submits the full
// record. The UpdatedAt field is refreshed automatically.
func (s *Store) UpdateContact(ctx context.Context, c *model.Contact) error {
	c.UpdatedAt = time.Now().UTC()

	const q = `UPDATE contacts SET
		first_name = ?, last_name = ?, phone_number = ?, email = ?,
		street = ?, city = ?, state = ?, zip = ?, country = ?,
		contact_by_email = ?, contact_by_phone = ?, updated_at = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, s.db.Rebind(q),
		c.FirstName, c.LastName, c.PhoneNumber, c.Email,
		c.Street, c.City, c.State, c.Zip, c.Country,
		c.ContactByEmail, c.ContactByPhone, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contact rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes the contact with the given ID. Deleting an id that
// does not exist is not an error; the effect is the same either way.
func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	q := s.db.Rebind("DELETE FROM contacts WHERE id = ?")
	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// MarkContactSpam sets the spam flag on a contact. The flag is one-way:
// no operation on this surface ever clears it, and marking an already
// flagged contact leaves it flagged.
func (s *Store) MarkContactSpam(ctx context.Context, id int64) error {
	q := s.db.Rebind("UPDATE contacts SET spam = ?, updated_at = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, true, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark contact spam: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark contact spam rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
