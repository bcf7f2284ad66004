package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rolodex/rolodex/internal/server/middleware"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/internal/ui"
)

// AuthHandler serves the login, signup, and logout pages. Validation and
// credential errors re-render the originating form with an inline message
// and leave the account table unchanged.
type AuthHandler struct {
	pageRenderer
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, render *ui.Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		pageRenderer: pageRenderer{render: render, logger: logger},
		auth:         auth,
	}
}

type loginForm struct {
	Username string
}

type signupForm struct {
	FirstName string
	LastName  string
	Username  string
}

type loginView struct {
	User  *service.Principal
	Form  loginForm
	Error string
}

type signupView struct {
	User  *service.Principal
	Form  signupForm
	Error string
}

// LoginForm renders the login page.
// GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.page(w, r, http.StatusOK, "login.html", loginView{})
}

// Login verifies the submitted credentials. On success it sets the session
// cookie and redirects home; on failure it re-renders the form.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := loginForm{Username: r.PostFormValue("username")}
	password := r.PostFormValue("password")

	if form.Username == "" || password == "" {
		h.page(w, r, http.StatusOK, "login.html", loginView{
			Form: form, Error: "Username and password are required.",
		})
		return
	}

	acct, err := h.auth.Login(r.Context(), form.Username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.page(w, r, http.StatusOK, "login.html", loginView{
				Form: form, Error: "Invalid username or password.",
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	token, err := h.auth.IssueSession(acct)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	http.SetCookie(w, middleware.NewSessionCookie(token, int(h.auth.SessionTTL().Seconds())))
	h.logger.Info("login", "username", acct.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupForm renders the signup page.
// GET /signup
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.page(w, r, http.StatusOK, "signup.html", signupView{})
}

// Signup creates a new account and logs it in. A taken username or a
// mismatched confirmation re-renders the form without touching storage.
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	form := signupForm{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Username:  r.PostFormValue("username"),
	}
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirmPassword")

	var msg string
	switch {
	case form.Username == "" || password == "":
		msg = "Username and password are required."
	case len(password) < 4:
		msg = "Password must be at least 4 characters."
	case password != confirm:
		msg = "Passwords do not match."
	}
	if msg != "" {
		h.page(w, r, http.StatusOK, "signup.html", signupView{Form: form, Error: msg})
		return
	}

	acct, err := h.auth.Signup(r.Context(), form.FirstName, form.LastName, form.Username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			h.page(w, r, http.StatusOK, "signup.html", signupView{
				Form: form, Error: "That username is already taken.",
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	token, err := h.auth.IssueSession(acct)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	http.SetCookie(w, middleware.NewSessionCookie(token, int(h.auth.SessionTTL().Seconds())))
	h.logger.Info("signup", "username", acct.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie and redirects home. Session tokens are
// stateless, so clearing the cookie is the whole operation.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, middleware.ClearSessionCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
