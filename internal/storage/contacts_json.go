// Package storage handles contact persistence in a JSON file and an ephemeral SQLite cache.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/contacts/internal/contact"
)

// Error kinds for backing-file failures. Callers branch with errors.Is.
var (
	ErrIO    = errors.New("contacts file I/O error")
	ErrParse = errors.New("contacts file is not valid JSON")
)

// ReadAllContacts reads all contacts from a JSON array file.
// A missing, empty or whitespace-only file yields an empty collection.
func ReadAllContacts(path string) ([]contact.Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file is an empty book
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var contacts []contact.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	return contacts, nil
}

// EncodeContacts renders contacts as a pretty-printed JSON array with a trailing newline.
// A nil slice encodes as an empty array.
func EncodeContacts(contacts []contact.Contact) ([]byte, error) {
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding contacts: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteAllContacts writes all contacts to the file, replacing existing content.
// The parent directory is created if needed.
func WriteAllContacts(path string, contacts []contact.Contact) error {
	data, err := EncodeContacts(contacts)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating directory %s: %v", ErrIO, dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}

	return nil
}

// InitContactsFile creates an empty contacts file if none exists.
// Returns true if a file was created, false if one was already present.
func InitContactsFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("%w: checking %s: %v", ErrIO, path, err)
	}

	if err := WriteAllContacts(path, nil); err != nil {
		return false, err
	}
	return true, nil
}
