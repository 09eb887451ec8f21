package main

import (
	"fmt"

	"github.com/matsen/contacts/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty contacts file",
	Long: `Create an empty contacts file at the resolved path. An existing file is
left as it is.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	created, err := storage.InitContactsFile(contactsPath)
	if err != nil {
		exitForError(err)
	}

	status := "exists"
	if created {
		status = "created"
		log.Info("initialized contacts file", "path", contactsPath)
	}

	if humanOutput {
		if created {
			outputSuccess("Created %s", contactsPath)
		} else {
			fmt.Printf("Contacts file already exists: %s\n", contactsPath)
		}
	} else {
		outputJSON(StatusResponse{Status: status, Path: contactsPath})
	}

	return nil
}
