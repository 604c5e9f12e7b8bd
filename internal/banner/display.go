// Package banner provides colored banner display functions for the
// poem-images CLI.
package banner

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/vinaywadhwa9/anjuli/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// PrintStartupBanner displays the startup banner with the model and the
// discovered prompt sources.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  poem-images - Batch Poem Illustration Generator
//	═══════════════════════════════════════════════════
//	  Model:    gemini-2.0-flash-exp-image-generation
//	  Sources:  poems
//	═══════════════════════════════════════════════════
func PrintStartupBanner(model string, sources []string) {
	sep := headerColor("═══════════════════════════════════════════════════")
	fmt.Println(sep)
	fmt.Println(headerColor("  poem-images - Batch Poem Illustration Generator"))
	fmt.Println(sep)
	fmt.Printf("  Model:    %s\n", model)
	if len(sources) == 0 {
		fmt.Println("  Sources:  (none found)")
	}
	for i, src := range sources {
		if i == 0 {
			fmt.Printf("  Sources:  %s\n", src)
		} else {
			fmt.Printf("            %s\n", src)
		}
	}
	fmt.Println(sep)
}

// PrintSummaryBanner displays the final tally after a completed run.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ Processing complete!
//	  Processed: 42   Skipped: 30   Failed: 2
//	  Duration:  12m 30s (750s)
//	═══════════════════════════════════════════════════
func PrintSummaryBanner(processed, skipped, failed, durationSecs int) {
	sep := successColor("═══════════════════════════════════════════════════")
	fmt.Println(sep)
	fmt.Println(successColor("  ✓ Processing complete!"))
	fmt.Printf("  Processed: %d   Skipped: %d   Failed: %d\n", processed, skipped, failed)
	fmt.Printf("  Duration:  %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Println(sep)
}

// PrintInterruptedBanner displays the tally at the point of interruption.
// Already-generated images are kept, so a later run resumes where this one
// stopped.
func PrintInterruptedBanner(processed, skipped, failed int) {
	sep := warnColor("═══════════════════════════════════════════════════")
	fmt.Println(sep)
	fmt.Println(warnColor("  ⚠ Run interrupted"))
	fmt.Printf("  Processed: %d   Skipped: %d   Failed: %d\n", processed, skipped, failed)
	fmt.Println("  Finished images are kept; rerun to continue.")
	fmt.Println(sep)
}
