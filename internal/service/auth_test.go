package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rolodex/rolodex/internal/store"
)

const (
	testSecret       = "test-secret-for-auth-tests"
	testSeedUser     = "cmps369"
	testSeedPassword = "rcnj"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	st, err := store.Open("") // in-memory
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewAuthService(st, testSecret, time.Hour, testSeedUser, testSeedPassword)
}

func TestSignupAndLogin(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	acct, err := auth.Signup(ctx, "Ada", "Lovelace", "ada", "s3cret")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if acct.ID == 0 {
		t.Fatal("expected non-zero account ID")
	}
	if acct.PasswordHash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}

	got, err := auth.Login(ctx, "ada", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != acct.ID {
		t.Errorf("login returned account %d, want %d", got.ID, acct.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, "", "", "bob", "correct"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, err := auth.Login(ctx, "bob", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, "", "", "taken", "first"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, err := auth.Signup(ctx, "", "", "taken", "second")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// The original credentials still work; the failed signup changed nothing.
	if _, err := auth.Login(ctx, "taken", "first"); err != nil {
		t.Errorf("original login broken after duplicate signup: %v", err)
	}
	if _, err := auth.Login(ctx, "taken", "second"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("duplicate signup's password must not work, got %v", err)
	}
}

func TestEnsureSeedAccount(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	if err := auth.EnsureSeedAccount(ctx); err != nil {
		t.Fatalf("EnsureSeedAccount: %v", err)
	}

	// Idempotent: safe to run on every startup.
	if err := auth.EnsureSeedAccount(ctx); err != nil {
		t.Fatalf("second EnsureSeedAccount: %v", err)
	}

	if _, err := auth.Login(ctx, testSeedUser, testSeedPassword); err != nil {
		t.Errorf("login with seed credentials: %v", err)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	acct, err := auth.Signup(ctx, "", "", "carol", "pw1234")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	token, err := auth.IssueSession(acct)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	p, err := auth.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if p.AccountID != acct.ID || p.Username != "carol" {
		t.Errorf("principal = %+v, want account %d carol", p, acct.ID)
	}
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	auth := newTestAuth(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := auth.ValidateSession(token); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("ValidateSession(%q): expected ErrInvalidCredentials, got %v", token, err)
		}
	}
}

func TestValidateSessionRejectsWrongKey(t *testing.T) {
	auth := newTestAuth(t)

	acct, err := auth.Signup(context.Background(), "", "", "dave", "pw1234")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := auth.IssueSession(acct)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	// Same token, different signing key.
	bad := NewAuthService(nil, "a-different-secret", time.Hour, testSeedUser, testSeedPassword)
	if _, err := bad.ValidateSession(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials from wrong key, got %v", err)
	}
}
