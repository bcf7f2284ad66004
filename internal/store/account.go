package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rolodex/rolodex/internal/model"
)

// CreateAccount inserts a new account. The ID and CreatedAt fields on acct
// are populated after a successful insert. A username collision returns
// ErrDuplicate, which callers surface as a recoverable form error.
func (s *Store) CreateAccount(ctx context.Context, acct *model.Account) error {
	acct.CreatedAt = time.Now().UTC()

	const q = `INSERT INTO accounts (first_name, last_name, username, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`

	err := s.db.QueryRowContext(ctx, s.db.Rebind(q),
		acct.FirstName, acct.LastName, acct.Username, acct.PasswordHash, acct.CreatedAt,
	).Scan(&acct.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", acct.Username, ErrDuplicate)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetAccountByUsername returns the account with the given unique username.
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	var acct model.Account
	q := s.db.Rebind("SELECT * FROM accounts WHERE username = ?")
	if err := s.db.GetContext(ctx, &acct, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account by username: %w", err)
	}
	return &acct, nil
}

// ListAccounts returns all accounts ordered by username.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := s.db.SelectContext(ctx, &accounts, "SELECT * FROM accounts ORDER BY username"); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// HasAnyAccount reports whether at least one account exists. Used for
// first-run detection.
func (s *Store) HasAnyAccount(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM accounts"); err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return count > 0, nil
}
