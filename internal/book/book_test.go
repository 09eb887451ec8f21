package book

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/contacts/internal/contact"
	"github.com/matsen/contacts/internal/storage"
)

const seedContacts = `[
  {
    "id": "AeHIrLTr6JkxGE6SN-0Rw",
    "name": "Allen Raymond",
    "email": "nulla.ante@vestibul.co.uk",
    "phone": "(992) 914-3792"
  },
  {
    "id": "qdggE76Jtbfd9eWJHrssH",
    "name": "Chaim Lewis",
    "email": "dui.in@egetlacus.ca",
    "phone": "(294) 840-6685"
  },
  {
    "id": 3,
    "name": "Kennedy Lane",
    "email": "mattis.Cras@nonenimMauris.net",
    "phone": "(542) 451-7038"
  }
]
`

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// setupBook writes content to a temp backing file and returns a Book over it.
func setupBook(t *testing.T, content string, opts ...Option) (*Book, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
	}
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	return New(path, opts...), path
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return data
}

func TestList(t *testing.T) {
	b, _ := setupBook(t, seedContacts)

	contacts, err := b.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("List() returned %d contacts, want 3", len(contacts))
	}
	if contacts[0].Name != "Allen Raymond" || contacts[2].Name != "Kennedy Lane" {
		t.Errorf("List() order = [%s ... %s], want file order", contacts[0].Name, contacts[2].Name)
	}
}

func TestList_MissingFileIsEmpty(t *testing.T) {
	b, path := setupBook(t, "")

	contacts, err := b.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if contacts == nil || len(contacts) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", contacts)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("List() created the backing file; stat error = %v", err)
	}
}

func TestList_ParseErrorIsLogged(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	b, _ := setupBook(t, `[{"id":`, WithLogger(log))

	_, err := b.List()
	if !errors.Is(err, storage.ErrParse) {
		t.Fatalf("List() error = %v, want ErrParse", err)
	}
	if !strings.Contains(logs.String(), "level=ERROR") {
		t.Errorf("expected an error-level log entry, got %q", logs.String())
	}
}

func TestGet(t *testing.T) {
	b, _ := setupBook(t, seedContacts)

	c, err := b.Get("qdggE76Jtbfd9eWJHrssH")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if c.Name != "Chaim Lewis" {
		t.Errorf("Get().Name = %q, want Chaim Lewis", c.Name)
	}
}

func TestGet_NumericIDComparesAsString(t *testing.T) {
	b, _ := setupBook(t, seedContacts)

	c, err := b.Get("3")
	if err != nil {
		t.Fatalf("Get(3) error = %v", err)
	}
	if c.Name != "Kennedy Lane" {
		t.Errorf("Get(3).Name = %q, want Kennedy Lane", c.Name)
	}
}

func TestGet_NotFound(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	b, _ := setupBook(t, seedContacts, WithLogger(log))

	_, err := b.Get("missing")
	if !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("expected a warn-level log entry, got %q", logs.String())
	}
}

func TestAdd_ThenGet(t *testing.T) {
	b, _ := setupBook(t, seedContacts)

	added, err := b.Add("Mango", "mango@gmail.com", "322-22-22")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added.ID != "id-1" {
		t.Errorf("Add().ID = %q, want id-1", added.ID)
	}

	got, err := b.Get(added.ID.String())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != added {
		t.Errorf("Get() = %+v, want %+v", got, added)
	}

	contacts, err := b.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(contacts) != 4 {
		t.Fatalf("List() returned %d contacts, want 4", len(contacts))
	}
	if contacts[3].ID != added.ID {
		t.Errorf("new contact at position %q, want appended last", contacts[3].ID)
	}
}

func TestAdd_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "contacts.json")
	b := New(path)

	added, err := b.Add("Mango", "mango@gmail.com", "322-22-22")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added.ID == "" {
		t.Error("Add() assigned an empty id")
	}

	contacts, err := storage.ReadAllContacts(path)
	if err != nil {
		t.Fatalf("ReadAllContacts() error = %v", err)
	}
	if len(contacts) != 1 {
		t.Errorf("backing file holds %d contacts, want 1", len(contacts))
	}
}

func TestAdd_FreshIDsAreDistinct(t *testing.T) {
	// Default generator: random UUIDs
	b := New(filepath.Join(t.TempDir(), "contacts.json"))

	seen := make(map[contact.ID]bool)
	for i := 0; i < 5; i++ {
		c, err := b.Add(fmt.Sprintf("Person %d", i), fmt.Sprintf("p%d@example.com", i), "555")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if seen[c.ID] {
			t.Fatalf("Add() reused id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestAdd_RegeneratesCollidingID(t *testing.T) {
	ids := []string{"AeHIrLTr6JkxGE6SN-0Rw", "fresh"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	b, _ := setupBook(t, seedContacts, WithIDGenerator(gen))

	c, err := b.Add("Mango", "mango@gmail.com", "322-22-22")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if c.ID != "fresh" {
		t.Errorf("Add().ID = %q, want fresh", c.ID)
	}
}

func TestAdd_GeneratorAlwaysCollides(t *testing.T) {
	b, path := setupBook(t, seedContacts, WithIDGenerator(func() string { return "3" }))
	before := readFile(t, path)

	if _, err := b.Add("Mango", "mango@gmail.com", "322-22-22"); err == nil {
		t.Fatal("Add() error = nil, want collision error")
	}
	if !bytes.Equal(readFile(t, path), before) {
		t.Error("backing file changed after failed add")
	}
}

func TestAdd_DuplicateRejected(t *testing.T) {
	tests := []struct {
		name                string
		cname, email, phone string
	}{
		{"exact", "Allen Raymond", "nulla.ante@vestibul.co.uk", "(992) 914-3792"},
		{"name case", "ALLEN raymond", "nulla.ante@vestibul.co.uk", "(992) 914-3792"},
		{"email case", "Allen Raymond", "NULLA.ANTE@VESTIBUL.CO.UK", "(992) 914-3792"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, path := setupBook(t, seedContacts)
			before := readFile(t, path)

			_, err := b.Add(tt.cname, tt.email, tt.phone)
			if !errors.Is(err, contact.ErrDuplicate) {
				t.Fatalf("Add() error = %v, want ErrDuplicate", err)
			}
			if !bytes.Equal(readFile(t, path), before) {
				t.Error("backing file changed after duplicate add")
			}
		})
	}
}

func TestAdd_DifferentPhoneIsNotDuplicate(t *testing.T) {
	b, _ := setupBook(t, seedContacts)

	if _, err := b.Add("Allen Raymond", "nulla.ante@vestibul.co.uk", "(992) 914-3793"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
}

func TestAdd_Validation(t *testing.T) {
	b, path := setupBook(t, seedContacts)
	before := readFile(t, path)

	_, err := b.Add("Mango", "", "322-22-22")
	if !errors.Is(err, contact.ErrEmptyEmail) {
		t.Fatalf("Add() error = %v, want ErrEmptyEmail", err)
	}
	if !bytes.Equal(readFile(t, path), before) {
		t.Error("backing file changed after invalid add")
	}
}

func TestRemove_ThenGet(t *testing.T) {
	b, path := setupBook(t, seedContacts)

	remaining, err := b.Remove("qdggE76Jtbfd9eWJHrssH")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("Remove() returned %d contacts, want 2", len(remaining))
	}

	if _, err := b.Get("qdggE76Jtbfd9eWJHrssH"); !errors.Is(err, contact.ErrNotFound) {
		t.Errorf("Get() after Remove() error = %v, want ErrNotFound", err)
	}

	if strings.Contains(string(readFile(t, path)), "qdggE76Jtbfd9eWJHrssH") {
		t.Error("backing file still contains removed id")
	}
}

func TestRemove_AllMatchingRecords(t *testing.T) {
	content := `[
  {"id": "dup", "name": "A", "email": "a@x", "phone": "1"},
  {"id": "keep", "name": "B", "email": "b@x", "phone": "2"},
  {"id": "dup", "name": "C", "email": "c@x", "phone": "3"}
]`
	b, _ := setupBook(t, content)

	remaining, err := b.Remove("dup")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "keep" {
		t.Errorf("Remove() = %v, want only keep", remaining)
	}
}

func TestRemove_NotFoundLeavesFileUnchanged(t *testing.T) {
	b, path := setupBook(t, seedContacts)
	before := readFile(t, path)

	_, err := b.Remove("missing")
	if !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("Remove() error = %v, want ErrNotFound", err)
	}
	if !bytes.Equal(readFile(t, path), before) {
		t.Error("backing file changed after removing a missing id")
	}
}

func TestRemove_MissingFileNoWrite(t *testing.T) {
	b, path := setupBook(t, "")

	if _, err := b.Remove("anything"); !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("Remove() error = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Remove() created the backing file; stat error = %v", err)
	}
}

func TestRoundTrip_PreservesRecords(t *testing.T) {
	b, path := setupBook(t, seedContacts)

	before, err := b.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Add then remove rewrites the file twice
	added, err := b.Add("Mango", "mango@gmail.com", "322-22-22")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := b.Remove(added.ID.String()); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	after, err := storage.ReadAllContacts(path)
	if err != nil {
		t.Fatalf("ReadAllContacts() error = %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("after round trip: %d contacts, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("contact %d = %+v, want %+v", i, after[i], before[i])
		}
	}
}
