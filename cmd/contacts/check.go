package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/contacts/internal/config"
	"github.com/matsen/contacts/internal/contact"
	"github.com/matsen/contacts/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the contacts file for integrity problems",
	Long: `Rebuild the SQLite cache from the contacts file and report problems:
  - IDs shared by more than one contact
  - contacts describing the same person under different IDs
  - contacts with a blank ID, name, email or phone

Exits with code 3 when problems are found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status           string                   `json:"status"`
	Contacts         int                      `json:"contacts"`
	DuplicateIDs     []storage.DuplicateID    `json:"duplicate_ids"`
	DuplicateEntries []storage.DuplicateEntry `json:"duplicate_entries"`
	Incomplete       []contact.Contact        `json:"incomplete"`
}

// problems returns the total number of problems found.
func (r CheckResult) problems() int {
	return len(r.DuplicateIDs) + len(r.DuplicateEntries) + len(r.Incomplete)
}

func runCheck(cmd *cobra.Command, args []string) error {
	dbPath := config.DBPath(contactsPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	result, err := checkContacts(db, contactsPath)
	if err != nil {
		db.Close()
		exitForError(err)
	}

	if humanOutput {
		printCheckHuman(result)
	} else {
		outputJSON(result)
	}

	if result.problems() > 0 {
		db.Close()
		os.Exit(ExitDataError)
	}
	return nil
}

// checkContacts rebuilds the cache from path and collects integrity problems.
func checkContacts(db *storage.DB, path string) (CheckResult, error) {
	count, err := db.RebuildContactsFromJSON(path)
	if err != nil {
		return CheckResult{}, err
	}
	log.Debug("rebuilt contacts cache", "contacts", count)

	result := CheckResult{Contacts: count}

	if result.DuplicateIDs, err = db.FindDuplicateIDs(); err != nil {
		return CheckResult{}, err
	}
	if result.DuplicateEntries, err = db.FindDuplicateEntries(); err != nil {
		return CheckResult{}, err
	}
	if result.Incomplete, err = db.FindIncompleteContacts(); err != nil {
		return CheckResult{}, err
	}

	// Empty arrays rather than null in JSON
	if result.DuplicateIDs == nil {
		result.DuplicateIDs = []storage.DuplicateID{}
	}
	if result.DuplicateEntries == nil {
		result.DuplicateEntries = []storage.DuplicateEntry{}
	}
	if result.Incomplete == nil {
		result.Incomplete = []contact.Contact{}
	}

	result.Status = "ok"
	if result.problems() > 0 {
		result.Status = "problems"
	}
	return result, nil
}

func printCheckHuman(r CheckResult) {
	if r.problems() == 0 {
		outputSuccess("OK: %d contacts, no problems found", r.Contacts)
		return
	}

	for _, d := range r.DuplicateIDs {
		outputWarning("Duplicate ID %q used by %d contacts", d.ID, d.Count)
	}
	for _, d := range r.DuplicateEntries {
		outputWarning("Duplicate entry %s <%s> %s: ids %s", d.Name, d.Email, d.Phone, strings.Join(d.IDs, ", "))
	}
	for _, c := range r.Incomplete {
		outputWarning("Incomplete contact %q: name=%q email=%q phone=%q", c.ID, c.Name, c.Email, c.Phone)
	}
	fmt.Printf("\n%d contacts, %d problems\n", r.Contacts, r.problems())
}
