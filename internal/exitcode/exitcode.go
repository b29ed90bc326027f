// Package exitcode defines process exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including reported no-ops
	// such as "timer already running".
	Success = 0

	// UserError indicates a user error (bad arguments, task not found,
	// empty title, unparseable due date).
	UserError = 1

	// StorageError indicates a failure to read, parse, or write the
	// backing files.
	StorageError = 2
)
