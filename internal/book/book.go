// Package book implements the contact store: list, get, add and remove over a
// single JSON backing file.
//
// Every operation reads the whole file and works on the in-memory collection.
// Mutating operations write the whole file back. There is no locking; the last
// writer wins.
package book

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/matsen/contacts/internal/contact"
	"github.com/matsen/contacts/internal/storage"
)

// maxIDAttempts bounds id regeneration when the generator collides with an existing id.
const maxIDAttempts = 8

// Book is a contact store bound to one backing file.
type Book struct {
	path  string
	newID func() string
	log   *slog.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(b *Book) { b.newID = gen }
}

// WithLogger sets the logger operations report failures to.
func WithLogger(log *slog.Logger) Option {
	return func(b *Book) { b.log = log }
}

// New returns a Book backed by the JSON file at path.
func New(path string, opts ...Option) *Book {
	b := &Book{
		path:  path,
		newID: uuid.NewString,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Path returns the backing file path.
func (b *Book) Path() string {
	return b.path
}

// Load reads the full collection from the backing file.
func (b *Book) Load() ([]contact.Contact, error) {
	contacts, err := storage.ReadAllContacts(b.path)
	if err != nil {
		return nil, b.report("load", err)
	}
	return contacts, nil
}

// List returns every contact in file order.
func (b *Book) List() ([]contact.Contact, error) {
	contacts, err := b.Load()
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	return contacts, nil
}

// Get returns the first contact whose id equals id.
func (b *Book) Get(id string) (contact.Contact, error) {
	contacts, err := b.Load()
	if err != nil {
		return contact.Contact{}, err
	}

	idx, found := contact.FindByID(contacts, id)
	if !found {
		return contact.Contact{}, b.report("get", fmt.Errorf("%w: %s", contact.ErrNotFound, id))
	}
	return contacts[idx], nil
}

// Remove deletes every contact with the given id and returns the remaining
// collection. Nothing is written when the id is absent.
func (b *Book) Remove(id string) ([]contact.Contact, error) {
	contacts, err := b.Load()
	if err != nil {
		return nil, err
	}

	kept, removed := contact.DeleteByID(contacts, id)
	if removed == 0 {
		return nil, b.report("remove", fmt.Errorf("%w: %s", contact.ErrNotFound, id))
	}

	if err := storage.WriteAllContacts(b.path, kept); err != nil {
		return nil, b.report("remove", err)
	}

	b.log.Info("removed contact", "id", id, "count", removed)
	return kept, nil
}

// Add creates a contact with a fresh id and appends it to the book.
// A contact matching an existing entry is rejected with contact.ErrDuplicate
// and nothing is written.
func (b *Book) Add(name, email, phone string) (contact.Contact, error) {
	contacts, err := b.Load()
	if err != nil {
		return contact.Contact{}, err
	}

	c := contact.Contact{
		ID:    contact.ID(b.newID()),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if err := c.ValidateForCreate(); err != nil {
		return contact.Contact{}, b.report("add", err)
	}

	if idx, found := contact.FindDuplicate(contacts, c); found {
		return contact.Contact{}, b.report("add", fmt.Errorf("%w (id: %s)", contact.ErrDuplicate, contacts[idx].ID))
	}

	// Regenerate on the unlikely id collision so ids stay unique
	for attempt := 1; ; attempt++ {
		if _, taken := contact.FindByID(contacts, c.ID.String()); !taken {
			break
		}
		if attempt == maxIDAttempts {
			return contact.Contact{}, b.report("add", fmt.Errorf("generating unique id: %d attempts collided", attempt))
		}
		c.ID = contact.ID(b.newID())
	}

	if err := storage.WriteAllContacts(b.path, append(contacts, c)); err != nil {
		return contact.Contact{}, b.report("add", err)
	}

	b.log.Info("added contact", "id", c.ID, "name", c.Name)
	return c, nil
}

// report logs err at the level its kind deserves and returns it unchanged.
// Storage failures are errors; business outcomes are warnings.
func (b *Book) report(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrIO), errors.Is(err, storage.ErrParse):
		b.log.Error("contact book operation failed", "op", op, "path", b.path, "err", err)
	default:
		b.log.Warn("contact book operation rejected", "op", op, "err", err)
	}
	return err
}
