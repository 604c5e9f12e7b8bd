package imagegen

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vinaywadhwa9/anjuli/internal/logging"
)

// smokeTestPrompt exercises the full generation path once before a batch run.
const smokeTestPrompt = "Black and white, low fidelity sketch style (5x7 inches) of a Taj Mahal, Indian style"

// SmokeTest generates a single test image and writes it to outputPath. It
// verifies credentials, model access, and image decoding before the batch
// spends time on real prompts.
func SmokeTest(ctx context.Context, gen *Generator, outputPath string) error {
	logging.Info("Generating test image with prompt: %s", smokeTestPrompt)

	data, err := gen.Generate(ctx, smokeTestPrompt)
	if err != nil {
		return err
	}
	if data == nil {
		return errors.New("no image data in test response")
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write test image: %w", err)
	}
	logging.Success("Saved test image to %s (%d bytes)", outputPath, len(data))
	return nil
}
