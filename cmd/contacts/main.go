// Package main provides the contacts CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/contacts/internal/book"
	"github.com/matsen/contacts/internal/config"
	"github.com/matsen/contacts/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags
var (
	humanOutput  bool
	contactsFile string
	logLevel     string
	logFormat    string
)

// Resolved in PersistentPreRunE, shared by all commands
var (
	cfg          *config.Config
	log          *slog.Logger
	contactsPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Command-line contact book",
	Long: `contacts keeps names, emails and phone numbers in a single JSON file.

The backing file is chosen by --file, then $CONTACTS_PATH, then contacts_path
in ~/.config/contacts/config.yml, then ~/.local/share/contacts/contacts.json.
A .env file in the working directory is loaded first.

All commands output JSON by default; use --human for tables and notices.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVarP(&contactsFile, "file", "f", "", "Path to the contacts JSON file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.Version = Version
}

// setup loads .env and config, builds the logger and resolves the backing file.
func setup(cmd *cobra.Command, args []string) error {
	// Ignore error - .env file is optional
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	opts := &logger.Options{
		Level:  firstNonEmpty(logLevel, cfg.LogLevel),
		Format: firstNonEmpty(logFormat, cfg.LogFormat),
		File:   cfg.LogFile,
	}
	log = logger.New(opts)

	contactsPath = cfg.ResolveContactsPath(contactsFile)
	log.Debug("resolved contacts file", "path", contactsPath)
	return nil
}

// openBook returns the contact book for the resolved backing file.
func openBook() *book.Book {
	return book.New(contactsPath, book.WithLogger(log))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
