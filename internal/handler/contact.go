package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/internal/store"
	"github.com/rolodex/rolodex/internal/ui"
)

// ContactHandler serves the contact pages: list, detail, and the
// create/edit/delete/spam actions. Each handler performs exactly one store
// operation and then renders a template or redirects.
type ContactHandler struct {
	pageRenderer
	store *store.Store
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(st *store.Store, render *ui.Renderer, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		pageRenderer: pageRenderer{render: render, logger: logger},
		store:        st,
	}
}

// contactForm holds the raw create/edit form values. It doubles as the
// template view model so a failed submit can re-render with the user's
// input intact.
type contactForm struct {
	FirstName      string
	LastName       string
	PhoneNumber    string
	Email          string
	Street         string
	City           string
	State          string
	Zip            string
	Country        string
	ContactByEmail bool
	ContactByPhone bool
}

// parseContactForm extracts and normalizes the contact form fields.
// Unchecked checkboxes are absent from the submission and coerce to false.
func parseContactForm(r *http.Request) contactForm {
	return contactForm{
		FirstName:      r.PostFormValue("firstName"),
		LastName:       r.PostFormValue("lastName"),
		PhoneNumber:    r.PostFormValue("phoneNumber"),
		Email:          r.PostFormValue("email"),
		Street:         r.PostFormValue("street"),
		City:           r.PostFormValue("city"),
		State:          r.PostFormValue("state"),
		Zip:            r.PostFormValue("zip"),
		Country:        r.PostFormValue("country"),
		ContactByEmail: formBool(r, "contactByEmail"),
		ContactByPhone: formBool(r, "contactByPhone"),
	}
}

func (f contactForm) apply(c *model.Contact) {
	c.FirstName = f.FirstName
	c.LastName = f.LastName
	c.PhoneNumber = f.PhoneNumber
	c.Email = f.Email
	c.Street = f.Street
	c.City = f.City
	c.State = f.State
	c.Zip = f.Zip
	c.Country = f.Country
	c.ContactByEmail = f.ContactByEmail
	c.ContactByPhone = f.ContactByPhone
}

// List renders the contact list.
// GET /
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.store.ListContacts(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.page(w, r, http.StatusOK, "index.html", struct {
		User     *service.Principal
		Contacts []model.Contact
	}{currentUser(r), contacts})
}

// View renders a single contact, or the 404 page.
// GET /{id}
func (h *ContactHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.notFound(w, r, "Contact not found.")
		return
	}

	contact, err := h.store.GetContact(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w, r, "Contact not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.page(w, r, http.StatusOK, "view.html", struct {
		User    *service.Principal
		Contact *model.Contact
	}{currentUser(r), contact})
}

// CreateForm renders the empty create form.
// GET /create
func (h *ContactHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "create.html", struct {
		User  *service.Principal
		Form  contactForm
		Error string
	}{currentUser(r), contactForm{}, ""})
}

// Create inserts a new contact and redirects to the list.
// POST /create
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := parseContactForm(r)

	var contact model.Contact
	form.apply(&contact)

	if err := h.store.CreateContact(r.Context(), &contact); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditForm renders the edit form pre-filled with the stored values.
// GET /{id}/edit
func (h *ContactHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.notFound(w, r, "Contact not found.")
		return
	}

	contact, err := h.store.GetContact(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w, r, "Contact not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	form := contactForm{
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		PhoneNumber:    contact.PhoneNumber,
		Email:          contact.Email,
		Street:         contact.Street,
		City:           contact.City,
		State:          contact.State,
		Zip:            contact.Zip,
		Country:        contact.Country,
		ContactByEmail: contact.ContactByEmail,
		ContactByPhone: contact.ContactByPhone,
	}

	h.page(w, r, http.StatusOK, "edit.html", struct {
		User    *service.Principal
		Contact *model.Contact
		Form    contactForm
		Error   string
	}{currentUser(r), contact, form, ""})
}

// Edit overwrites all mutable fields of the contact and redirects to its
// detail page. There is no merge with prior values.
// POST /{id}/edit
func (h *ContactHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.notFound(w, r, "Contact not found.")
		return
	}

	form := parseContactForm(r)
	contact := model.Contact{ID: id}
	form.apply(&contact)

	if err := h.store.UpdateContact(r.Context(), &contact); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w, r, "Contact not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d", id), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page.
// GET /{id}/delete
func (h *ContactHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.notFound(w, r, "Contact not found.")
		return
	}

	contact, err := h.store.GetContact(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w, r, "Contact not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.page(w, r, http.StatusOK, "delete.html", struct {
		User    *service.Principal
		Contact *model.Contact
	}{currentUser(r), contact})
}

// Delete removes the contact and redirects to the list. Deleting an id
// that is already gone lands on the same redirect.
// POST /{id}/delete
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.notFound(w, r, "Contact not found.")
		return
	}

	if err := h.store.DeleteContact(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// MarkSpam sets the one-way spam flag and redirects to the list.
// POST /{id}/spam
func (h *ContactHandler) MarkSpam(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.notFound(w, r, "Contact not found.")
		return
	}

	if err := h.store.MarkContactSpam(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w, r, "Contact not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
