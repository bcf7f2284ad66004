package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rolodex/rolodex/internal/server/middleware"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/internal/ui"
)

// pageRenderer renders a template with the given status, falling back to a
// plain 500 if the template itself fails. Shared by both handler types.
type pageRenderer struct {
	render *ui.Renderer
	logger *slog.Logger
}

func (p *pageRenderer) page(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.render.Render(w, name, data); err != nil {
		p.logger.Error("render template", "template", name, "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
	}
}

// notFound renders the 404 page.
func (p *pageRenderer) notFound(w http.ResponseWriter, r *http.Request, message string) {
	p.page(w, r, http.StatusNotFound, "notfound.html", struct {
		User    *service.Principal
		Message string
	}{currentUser(r), message})
}

// serverError logs the failure and renders the generic 500 page. Storage
// failures are never shown to the user in detail.
func (p *pageRenderer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("request failed", "error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()))
	p.page(w, r, http.StatusInternalServerError, "error.html", struct {
		User *service.Principal
	}{currentUser(r)})
}

// currentUser returns the session principal attached to the request, or nil.
func currentUser(r *http.Request) *service.Principal {
	return middleware.GetPrincipal(r.Context())
}

// urlID extracts the {id} route parameter as an int64. A non-numeric id is
// reported the same way as a missing row.
func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formBool coerces a checkbox field: absent means false, never null.
func formBool(r *http.Request, key string) bool {
	switch r.PostFormValue(key) {
	case "on", "1", "true":
		return true
	}
	return false
}
