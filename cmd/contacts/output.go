package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/matsen/contacts/internal/contact"
	"github.com/matsen/contacts/internal/storage"
)

// Notice colors for human output.
var (
	successColor = color.New(color.FgHiGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputSuccess prints a green notice to stdout.
func outputSuccess(format string, args ...interface{}) {
	successColor.Fprintf(os.Stdout, format+"\n", args...)
}

// outputWarning prints a yellow notice to stdout.
func outputWarning(format string, args ...interface{}) {
	warnColor.Fprintf(os.Stdout, format+"\n", args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		errorColor.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithWarning reports an expected business outcome (not found, duplicate)
// and exits with code. Human output uses a yellow notice instead of an error.
func exitWithWarning(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		outputWarning("%s", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps a contact book error to its exit code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, contact.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, contact.ErrDuplicate):
		return ExitDuplicate
	case errors.Is(err, contact.ErrEmptyName),
		errors.Is(err, contact.ErrEmptyEmail),
		errors.Is(err, contact.ErrEmptyPhone):
		return ExitValidation
	case errors.Is(err, storage.ErrIO), errors.Is(err, storage.ErrParse):
		return ExitDataError
	default:
		return ExitError
	}
}

// exitForError reports a contact book error and exits with the matching code.
func exitForError(err error) {
	code := exitCodeFor(err)
	switch code {
	case ExitNotFound, ExitDuplicate:
		exitWithWarning(code, "%v", err)
	default:
		exitWithError(code, "%v", err)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// writeContactsTable renders contacts as an aligned table with an index column.
func writeContactsTable(w io.Writer, contacts []contact.Contact) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tEMAIL\tPHONE")
	for i, c := range contacts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, c.ID, c.Name, c.Email, c.Phone)
	}
	return tw.Flush()
}

// writeContactDetail renders a single contact as key/value rows.
func writeContactDetail(w io.Writer, c contact.Contact) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", c.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", c.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", c.Phone)
	return tw.Flush()
}
