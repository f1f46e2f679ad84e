// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, rejected input, bad import file).
	UserError = 1

	// ConfigError indicates an unreadable config file or invalid configured value.
	ConfigError = 2

	// StorageError indicates the task store could not be opened or written.
	StorageError = 3
)
