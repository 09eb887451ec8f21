package main

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single contact by ID",
	Long: `Get a single contact by its ID.

Example:
  contacts get AeHIrLTr6JkxGE6SN-0Rw`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id := args[0]
	c, err := openBook().Get(id)
	if err != nil {
		exitForError(err)
	}

	if humanOutput {
		return writeContactDetail(os.Stdout, c)
	}
	outputJSON(c)
	return nil
}
