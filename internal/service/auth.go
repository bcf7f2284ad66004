package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Principal is the authenticated identity carried by a session token.
type Principal struct {
	AccountID int64
	Username  string
}

// AuthService verifies credentials, creates accounts, and issues the signed
// session tokens stored in the session cookie.
type AuthService struct {
	store      *store.Store
	signingKey []byte
	sessionTTL time.Duration

	// Seed account provisioned on first run.
	SeedUsername string
	seedPassword string
}

// NewAuthService creates an AuthService. seedUsername/seedPassword define
// the account provisioned by EnsureSeedAccount.
func NewAuthService(st *store.Store, secret string, sessionTTL time.Duration, seedUsername, seedPassword string) *AuthService {
	return &AuthService{
		store:        st,
		signingKey:   []byte(secret),
		sessionTTL:   sessionTTL,
		SeedUsername: seedUsername,
		seedPassword: seedPassword,
	}
}

// SessionTTL returns the lifetime of issued session tokens.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login verifies a username/password pair against the stored bcrypt hash.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials
// so the login form can't be used to probe for accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Account, error) {
	acct, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// Signup hashes the password and creates a new account. A taken username
// returns ErrUsernameTaken; the account table is left unchanged.
func (s *AuthService) Signup(ctx context.Context, firstName, lastName, username, password string) (*model.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := &model.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateAccount(ctx, acct); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acct, nil
}

// EnsureSeedAccount creates the seed account if it does not exist yet.
// Idempotent: safe to run on every startup. A concurrent create racing the
// uniqueness check is also treated as success.
func (s *AuthService) EnsureSeedAccount(ctx context.Context) error {
	_, err := s.store.GetAccountByUsername(ctx, s.SeedUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check seed account: %w", err)
	}

	if _, err := s.Signup(ctx, "Admin", "User", s.SeedUsername, s.seedPassword); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("create seed account: %w", err)
	}
	return nil
}

// IssueSession creates a signed session token for the given account.
func (s *AuthService) IssueSession(acct *model.Account) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		AccountID: acct.ID,
		Username:  acct.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			Issuer:    "rolodex",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// ValidateSession verifies a session token and returns the identity it
// carries. Expired or tampered tokens return ErrInvalidCredentials.
func (s *AuthService) ValidateSession(tokenStr string) (*Principal, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		AccountID: claims.AccountID,
		Username:  claims.Username,
	}, nil
}

type sessionClaims struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}
