package main

// Exit codes for all contacts commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or malformed config)
	ExitDataError   = 3 // Data error (backing file unreadable, unwritable or malformed; check found problems)
	ExitNotFound    = 4 // No contact with the given id
	ExitDuplicate   = 5 // Contact already in the book
	ExitValidation  = 6 // Missing required field
)
