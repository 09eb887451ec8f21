package main

import (
	"github.com/matsen/contacts/internal/contact"
	"github.com/spf13/cobra"
)

func init() {
	addCmd.Flags().StringP("name", "n", "", "Contact name (required)")
	addCmd.Flags().StringP("email", "e", "", "Contact email (required)")
	addCmd.Flags().StringP("phone", "p", "", "Contact phone (required)")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("email")
	addCmd.MarkFlagRequired("phone")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Long: `Add a contact with a freshly generated ID.

A contact whose name and email match an existing entry (ignoring case) and
whose phone matches exactly is rejected as a duplicate.

Example:
  contacts add --name Mango --email mango@gmail.com --phone 322-22-22`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

// AddResult is the response for the add command.
type AddResult struct {
	Status  string          `json:"status"`
	Contact contact.Contact `json:"contact"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	phone, _ := cmd.Flags().GetString("phone")

	c, err := openBook().Add(name, email, phone)
	if err != nil {
		exitForError(err)
	}

	if humanOutput {
		outputSuccess("%s is added to the contact list! (id: %s)", c.Name, c.ID)
	} else {
		outputJSON(AddResult{
			Status:  "created",
			Contact: c,
		})
	}

	return nil
}
