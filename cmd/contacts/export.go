package main

import (
	"fmt"
	"strings"

	"github.com/matsen/contacts/internal/contact"
	"github.com/matsen/contacts/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportVCard bool
	exportIDs   string
)

func init() {
	exportCmd.Flags().BoolVar(&exportVCard, "vcard", false, "Export to vCard format")
	exportCmd.Flags().StringVar(&exportIDs, "ids", "", "Export only specified IDs (comma-separated)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export contacts to vCard format",
	Long: `Export contacts to vCard 4.0 format.

Examples:
  contacts export --vcard
  contacts export --vcard --ids AeHIrLTr6JkxGE6SN-0Rw,qdggE76Jtbfd9eWJHrssH
  contacts export --vcard > contacts.vcf`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if !exportVCard {
		exitWithError(ExitError, "--vcard flag is required")
	}

	b := openBook()

	var contacts []contact.Contact
	if exportIDs != "" {
		all, err := b.Load()
		if err != nil {
			exitForError(err)
		}
		for _, id := range strings.Split(exportIDs, ",") {
			id = strings.TrimSpace(id)
			idx, found := contact.FindByID(all, id)
			if !found {
				exitWithWarning(ExitNotFound, "unknown id: %s", id)
			}
			contacts = append(contacts, all[idx])
		}
	} else {
		var err error
		contacts, err = b.List()
		if err != nil {
			exitForError(err)
		}
	}

	fmt.Print(export.ToVCardList(contacts))
	return nil
}
