// Package contact defines the core domain type for contact book entries.
package contact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Contact represents a single entry in the contact book.
type Contact struct {
	ID    ID     `json:"id"`    // Required: unique identifier, assigned at creation
	Name  string `json:"name"`  // Required
	Email string `json:"email"` // Required
	Phone string `json:"phone"` // Required
}

// ID is a contact identifier. It decodes from either a JSON string or a
// JSON number, so hand-edited files with numeric ids still compare as strings.
type ID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string.
func (id ID) String() string {
	return string(id)
}

// Validation and lookup errors.
var (
	ErrEmptyName  = errors.New("name is required")
	ErrEmptyEmail = errors.New("email is required")
	ErrEmptyPhone = errors.New("phone is required")
	ErrNotFound   = errors.New("contact not found")
	ErrDuplicate  = errors.New("contact with this name, email and phone already exists")
)

// ValidateForCreate validates a contact for creation.
// The id is not checked; it is assigned by the store.
func (c *Contact) ValidateForCreate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}

// SameEntry reports whether two contacts describe the same person:
// name and email match case-insensitively, phone matches exactly.
// Ids are ignored.
func (c *Contact) SameEntry(other Contact) bool {
	return strings.EqualFold(c.Name, other.Name) &&
		strings.EqualFold(c.Email, other.Email) &&
		c.Phone == other.Phone
}

// FindByID searches for a contact by ID.
// Returns the index and true if found, -1 and false otherwise.
func FindByID(contacts []Contact, id string) (int, bool) {
	for i, c := range contacts {
		if c.ID.String() == id {
			return i, true
		}
	}
	return -1, false
}

// FindDuplicate searches for an existing entry matching candidate per SameEntry.
func FindDuplicate(contacts []Contact, candidate Contact) (int, bool) {
	for i, c := range contacts {
		if candidate.SameEntry(c) {
			return i, true
		}
	}
	return -1, false
}

// DeleteByID returns a new slice without any contact whose id matches.
// Order is preserved. The count of removed contacts is returned alongside.
func DeleteByID(contacts []Contact, id string) ([]Contact, int) {
	kept := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.ID.String() == id {
			continue
		}
		kept = append(kept, c)
	}
	return kept, len(contacts) - len(kept)
}
