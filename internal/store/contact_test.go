package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rolodex/rolodex/internal/model"
)

func sampleContact() *model.Contact {
	return &model.Contact{
		FirstName:      "Grace",
		LastName:       "Hopper",
		PhoneNumber:    "555-0101",
		Email:          "grace@example.com",
		Street:         "1 Navy Way",
		City:           "Arlington",
		State:          "VA",
		Zip:            "22202",
		Country:        "USA",
		ContactByEmail: true,
		ContactByPhone: true,
	}
}

func TestContactRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := sampleContact()
	if err := s.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected non-zero ID after create")
	}

	got, err := s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}

	if got.FirstName != c.FirstName || got.LastName != c.LastName {
		t.Errorf("name did not round-trip: got %q %q", got.FirstName, got.LastName)
	}
	if got.PhoneNumber != c.PhoneNumber || got.Email != c.Email {
		t.Errorf("contact details did not round-trip")
	}
	if got.Street != c.Street || got.City != c.City || got.State != c.State ||
		got.Zip != c.Zip || got.Country != c.Country {
		t.Errorf("address did not round-trip")
	}
	if !got.ContactByEmail || !got.ContactByPhone {
		t.Errorf("preference flags did not round-trip: email=%v phone=%v",
			got.ContactByEmail, got.ContactByPhone)
	}
	if got.Spam {
		t.Error("new contact must not be flagged as spam")
	}
}

func TestContactFlagsDefaultFalse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &model.Contact{FirstName: "No", LastName: "Flags"}
	if err := s.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	got, err := s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if got.ContactByEmail || got.ContactByPhone || got.Spam {
		t.Errorf("expected all flags false, got email=%v phone=%v spam=%v",
			got.ContactByEmail, got.ContactByPhone, got.Spam)
	}
}

func TestContactGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetContact(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		if err := s.CreateContact(ctx, &model.Contact{FirstName: name}); err != nil {
			t.Fatalf("CreateContact(%s): %v", name, err)
		}
	}

	contacts, err := s.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(contacts))
	}
	for i := 1; i < len(contacts); i++ {
		if contacts[i].ID <= contacts[i-1].ID {
			t.Errorf("contacts not in id order: %d before %d",
				contacts[i-1].ID, contacts[i].ID)
		}
	}
}

func TestContactUpdateOverwritesAllFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := sampleContact()
	if err := s.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	// Submit a full replacement with different values and cleared flags.
	updated := &model.Contact{
		ID:        c.ID,
		FirstName: "Updated",
		LastName:  "Person",
	}
	if err := s.UpdateContact(ctx, updated); err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}

	got, err := s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if got.FirstName != "Updated" || got.LastName != "Person" {
		t.Errorf("got name %q %q, want Updated Person", got.FirstName, got.LastName)
	}
	// No merge with prior values: old fields must be gone.
	if got.PhoneNumber != "" || got.Email != "" || got.Street != "" {
		t.Errorf("update merged old values: phone=%q email=%q street=%q",
			got.PhoneNumber, got.Email, got.Street)
	}
	if got.ContactByEmail || got.ContactByPhone {
		t.Errorf("flags not overwritten to false")
	}
}

func TestContactUpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateContact(context.Background(), &model.Contact{ID: 4242})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := sampleContact()
	if err := s.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	if err := s.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}

	if _, err := s.GetContact(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an id that is already gone is not an error.
	if err := s.DeleteContact(ctx, c.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestContactMarkSpamIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := sampleContact()
	if err := s.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	if err := s.MarkContactSpam(ctx, c.ID); err != nil {
		t.Fatalf("MarkContactSpam: %v", err)
	}
	if err := s.MarkContactSpam(ctx, c.ID); err != nil {
		t.Fatalf("MarkContactSpam twice: %v", err)
	}

	got, err := s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if !got.Spam {
		t.Error("expected spam flag true after marking")
	}
}

func TestContactMarkSpamNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.MarkContactSpam(context.Background(), 31337)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
