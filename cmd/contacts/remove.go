package main

import (
	"github.com/matsen/contacts/internal/contact"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a contact by ID",
	Long: `Remove the contact with the given ID. The file is left untouched when no
contact has that ID.

Example:
  contacts remove AeHIrLTr6JkxGE6SN-0Rw`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

// RemoveResult is the response for the remove command.
type RemoveResult struct {
	Status   string            `json:"status"`
	ID       string            `json:"id"`
	Contacts []contact.Contact `json:"contacts"`
}

func runRemove(cmd *cobra.Command, args []string) error {
	id := args[0]
	remaining, err := openBook().Remove(id)
	if err != nil {
		exitForError(err)
	}

	if humanOutput {
		outputSuccess("Contact is removed from the contact list!")
	} else {
		outputJSON(RemoveResult{
			Status:   "removed",
			ID:       id,
			Contacts: remaining,
		})
	}

	return nil
}
