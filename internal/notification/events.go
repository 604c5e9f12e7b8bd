package notification

import "fmt"

// Event types reported after a batch run.
const (
	EventCompleted       = "completed"
	EventInterrupted     = "interrupted"
	EventSmokeTestFailed = "smoke_test_failed"
)

// FormatEvent creates a notification message for the given event and tally.
func FormatEvent(event, project string, processed, skipped, failed int) string {
	switch event {
	case EventCompleted:
		return fmt.Sprintf("✅ %s batch complete: %d processed, %d skipped, %d failed", project, processed, skipped, failed)
	case EventInterrupted:
		return fmt.Sprintf("⏸️ %s batch interrupted after %d of its files (%d skipped, %d failed)", project, processed, skipped, failed)
	case EventSmokeTestFailed:
		return fmt.Sprintf("❌ %s smoke test failed - no batch work started", project)
	default:
		return fmt.Sprintf("ℹ️ %s event: %s", project, event)
	}
}
