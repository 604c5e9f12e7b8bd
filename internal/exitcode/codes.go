// Package exitcode defines named exit codes for the poem-images CLI.
//
// Per-file generation failures never affect the exit code; only fatal
// precondition errors and interrupts terminate with a non-zero status.
package exitcode

const (
	Success     = 0   // Batch visited all discovered files
	Error       = 1   // Missing credential, client init or config failure
	Interrupted = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
