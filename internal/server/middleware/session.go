package middleware

import (
	"context"
	"net/http"

	"github.com/rolodex/rolodex/internal/service"
)

type contextKeySession string

// SessionPrincipalKey is the context key for the authenticated principal.
const SessionPrincipalKey contextKeySession = "session_principal"

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "rolodex_session"

// Session returns a middleware that resolves the session cookie into a
// principal on the request context. Requests without a valid session pass
// through unauthenticated; gating happens in RequireSession. This split
// lets public pages (the contact list, the detail view) still render the
// logged-in navigation when a session is present.
func Session(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authSvc.ValidateSession(cookie.Value)
			if err != nil {
				// Expired or tampered token: drop the cookie and continue
				// unauthenticated rather than failing the request.
				http.SetCookie(w, ClearSessionCookie())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionPrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession returns a middleware that redirects unauthenticated
// requests to the login page and stops further processing. It must be used
// after Session in the middleware chain.
func RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r.Context()) == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal extracts the authenticated principal from the context.
// Returns nil if no principal is present (i.e., unauthenticated request).
func GetPrincipal(ctx context.Context) *service.Principal {
	if p, ok := ctx.Value(SessionPrincipalKey).(*service.Principal); ok {
		return p
	}
	return nil
}

// NewSessionCookie builds the HttpOnly cookie holding a session token.
func NewSessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired cookie that removes the session.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
