package main

import (
	"fmt"
	"os"

	"github.com/matsen/contacts/internal/contact"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contacts",
	Long: `List every contact in the book, in the order they were added.

Examples:
  contacts list
  contacts list --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// ListResult is the response for the list command.
type ListResult struct {
	Contacts []contact.Contact `json:"contacts"`
	Count    int               `json:"count"`
}

func runList(cmd *cobra.Command, args []string) error {
	contacts, err := openBook().List()
	if err != nil {
		exitForError(err)
	}

	if humanOutput {
		if len(contacts) == 0 {
			fmt.Println("No contacts found")
			return nil
		}
		if err := writeContactsTable(os.Stdout, contacts); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %d contacts\n", len(contacts))
	} else {
		outputJSON(ListResult{
			Contacts: contacts,
			Count:    len(contacts),
		})
	}

	return nil
}
