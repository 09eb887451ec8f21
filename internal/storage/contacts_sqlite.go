package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/matsen/contacts/internal/contact"
)

// ensureContactKeysSchema creates the case-folded lookup table used by
// duplicate detection. SQLite's lower() only folds ASCII, so folding is
// done in Go at insert time.
func (d *DB) ensureContactKeysSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS contact_keys (
			pos INTEGER PRIMARY KEY REFERENCES contacts(pos),
			name_fold TEXT NOT NULL,
			email_fold TEXT NOT NULL
		);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("creating contact_keys schema: %w", err)
	}
	return nil
}

// RebuildContactsFromJSON clears the contacts tables and rebuilds them from the backing file.
func (d *DB) RebuildContactsFromJSON(path string) (int, error) {
	if err := d.ensureContactKeysSchema(); err != nil {
		return 0, err
	}

	contacts, err := ReadAllContacts(path)
	if err != nil {
		return 0, fmt.Errorf("reading contacts: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Clear existing data
	if _, err := tx.Exec("DELETE FROM contact_keys"); err != nil {
		return 0, fmt.Errorf("clearing contact_keys table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return 0, fmt.Errorf("clearing contacts table: %w", err)
	}

	contactsStmt, err := tx.Prepare(`
		INSERT INTO contacts (pos, id, name, email, phone)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing contacts insert: %w", err)
	}
	defer contactsStmt.Close()

	keysStmt, err := tx.Prepare(`
		INSERT INTO contact_keys (pos, name_fold, email_fold)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing contact_keys insert: %w", err)
	}
	defer keysStmt.Close()

	for i, c := range contacts {
		if _, err := contactsStmt.Exec(i, c.ID.String(), c.Name, c.Email, c.Phone); err != nil {
			return 0, fmt.Errorf("inserting contact %s: %w", c.ID, err)
		}
		if _, err := keysStmt.Exec(i, strings.ToLower(c.Name), strings.ToLower(c.Email)); err != nil {
			return 0, fmt.Errorf("inserting keys for contact %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(contacts), nil
}

// CountContacts returns the number of contacts in the cache.
func (d *DB) CountContacts() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

// DuplicateID is an id shared by more than one record.
type DuplicateID struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// FindDuplicateIDs returns ids that appear more than once, in file order of first appearance.
func (d *DB) FindDuplicateIDs() ([]DuplicateID, error) {
	rows, err := d.db.Query(`
		SELECT id, COUNT(*)
		FROM contacts
		GROUP BY id
		HAVING COUNT(*) > 1
		ORDER BY MIN(pos)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying duplicate ids: %w", err)
	}
	defer rows.Close()

	var dupes []DuplicateID
	for rows.Next() {
		var dup DuplicateID
		if err := rows.Scan(&dup.ID, &dup.Count); err != nil {
			return nil, fmt.Errorf("scanning duplicate id: %w", err)
		}
		dupes = append(dupes, dup)
	}
	return dupes, rows.Err()
}

// DuplicateEntry groups records describing the same person under different ids.
type DuplicateEntry struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	IDs   []string `json:"ids"`
}

// FindDuplicateEntries returns groups of records that match per contact.SameEntry.
func (d *DB) FindDuplicateEntries() ([]DuplicateEntry, error) {
	if err := d.ensureContactKeysSchema(); err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`
		SELECT MIN(c.name), MIN(c.email), c.phone, GROUP_CONCAT(c.id, char(31))
		FROM contacts c
		JOIN contact_keys k ON k.pos = c.pos
		GROUP BY k.name_fold, k.email_fold, c.phone
		HAVING COUNT(*) > 1
		ORDER BY MIN(c.pos)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying duplicate entries: %w", err)
	}
	defer rows.Close()

	var dupes []DuplicateEntry
	for rows.Next() {
		var dup DuplicateEntry
		var ids string
		if err := rows.Scan(&dup.Name, &dup.Email, &dup.Phone, &ids); err != nil {
			return nil, fmt.Errorf("scanning duplicate entry: %w", err)
		}
		dup.IDs = strings.Split(ids, "\x1f")
		dupes = append(dupes, dup)
	}
	return dupes, rows.Err()
}

// FindIncompleteContacts returns records with a blank id or required field.
func (d *DB) FindIncompleteContacts() ([]contact.Contact, error) {
	rows, err := d.db.Query(`
		SELECT id, name, email, phone
		FROM contacts
		WHERE trim(id) = '' OR trim(name) = '' OR trim(email) = '' OR trim(phone) = ''
		ORDER BY pos
	`)
	if err != nil {
		return nil, fmt.Errorf("querying incomplete contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// scanContacts scans rows of (id, name, email, phone) into contacts.
func scanContacts(rows *sql.Rows) ([]contact.Contact, error) {
	var contacts []contact.Contact
	for rows.Next() {
		var c contact.Contact
		var id string
		if err := rows.Scan(&id, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.ID = contact.ID(id)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
