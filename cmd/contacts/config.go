package main

import (
	"fmt"

	"github.com/matsen/contacts/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration.

Usage:
  contacts config          # Show all settings
  contacts config path     # Print the resolved contacts file path

Settings are read from ~/.config/contacts/config.yml:
  contacts_path  Path to the contacts JSON file
  log_level      debug, info, warn (default) or error
  log_format     text (default) or json
  log_file       Append logs to this file instead of stderr`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"path"},
	RunE:      runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	ConfigFile   string `json:"config_file"`
	ContactsPath string `json:"contacts_path"`
	CachePath    string `json:"cache_path"`
	LogLevel     string `json:"log_level,omitempty"`
	LogFormat    string `json:"log_format,omitempty"`
	LogFile      string `json:"log_file,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if args[0] != "path" {
			exitWithError(ExitError, "unknown config key: %s (valid: path)", args[0])
		}
		if humanOutput {
			fmt.Println(contactsPath)
		} else {
			outputJSON(StatusResponse{Status: "ok", Path: contactsPath})
		}
		return nil
	}

	resp := ConfigResponse{
		ConfigFile:   config.ConfigPath(),
		ContactsPath: contactsPath,
		CachePath:    config.DBPath(contactsPath),
		LogLevel:     firstNonEmpty(logLevel, cfg.LogLevel),
		LogFormat:    firstNonEmpty(logFormat, cfg.LogFormat),
		LogFile:      cfg.LogFile,
	}

	if humanOutput {
		fmt.Printf("config-file:   %s\n", resp.ConfigFile)
		fmt.Printf("contacts-path: %s\n", resp.ContactsPath)
		fmt.Printf("cache-path:    %s\n", resp.CachePath)
		fmt.Printf("log-level:     %s\n", displayOrDefault(resp.LogLevel, "warn"))
		fmt.Printf("log-format:    %s\n", displayOrDefault(resp.LogFormat, "text"))
		fmt.Printf("log-file:      %s\n", displayOrDefault(resp.LogFile, "(stderr)"))
	} else {
		outputJSON(resp)
	}

	return nil
}

func displayOrDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
