// Package batch turns a tree of prompt metadata files into a tree of image
// files, one prompt at a time.
package batch

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/vinaywadhwa9/anjuli/internal/checksum"
	"github.com/vinaywadhwa9/anjuli/internal/logging"
	"github.com/vinaywadhwa9/anjuli/internal/poem"
)

// Inter-file throttle bounds: a uniformly random pause in this window is
// slept after every file to spread request load.
const (
	DefaultThrottleMin = 1 * time.Second
	DefaultThrottleMax = 3 * time.Second
)

// Generator produces image bytes for a prompt. A nil result with a nil error
// means the remote service could not produce an image; a non-nil error means
// the run was cancelled.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Totals are the per-run counters. Every visited file increments Processed;
// Skipped and Failed additionally record its outcome. Never persisted.
type Totals struct {
	Processed int
	Skipped   int
	Failed    int
}

// Driver discovers prompt sources, generates the missing images, and keeps
// the tally. Strictly sequential: one prompt in flight at any time.
type Driver struct {
	Gen   Generator
	Store *checksum.Store

	// Root is the directory searched for poem sources ("." when empty).
	Root string

	// Throttle window; both zero selects the defaults.
	ThrottleMin time.Duration
	ThrottleMax time.Duration

	// Rand drives the throttle jitter. When nil, the shared math/rand
	// source is used.
	Rand *rand.Rand
}

// Run visits every discovered metadata file and returns the final tally.
// Missing source directories yield zero totals, not an error; the only error
// returned is context cancellation, alongside the tally so far.
func (d *Driver) Run(ctx context.Context) (Totals, error) {
	var totals Totals

	dirs := poem.DiscoverDirs(d.Root)
	if len(dirs) == 0 {
		logging.Error("No poem folders found. Exiting.")
		return totals, nil
	}
	if len(dirs) == 1 {
		logging.Info("Using '%s' directory for processing", dirs[0])
	}

	total := 0
	perDir := make([][]string, 0, len(dirs))
	for _, dir := range dirs {
		files, err := poem.Scan(dir)
		if err != nil {
			logging.Error("Error scanning %s: %v", dir, err)
			files = nil
		}
		perDir = append(perDir, files)
		total += len(files)
	}
	logging.Info("Found %d metadata files to process", total)

	for _, files := range perDir {
		for _, metadataFile := range files {
			if ctx.Err() != nil {
				return totals, ctx.Err()
			}

			if err := d.processFile(ctx, metadataFile, &totals); err != nil {
				return totals, err
			}
			logging.Info("Progress: %d/%d (%.1f%%)", totals.Processed, total,
				float64(totals.Processed)/float64(total)*100)

			if err := d.throttle(ctx); err != nil {
				return totals, err
			}
		}
	}

	return totals, nil
}

// processFile handles one metadata file, updating the tally. Per-file
// failures are absorbed; the returned error is only ever context
// cancellation.
func (d *Driver) processFile(ctx context.Context, metadataFile string, totals *Totals) error {
	outputPath := poem.OutputPath(metadataFile)

	// Existence of the output is sufficient to skip, regardless of
	// checksum state or prompt changes.
	if _, err := os.Stat(outputPath); err == nil {
		logging.Info("SKIPPED: Image already exists: %s", outputPath)
		totals.Skipped++
		totals.Processed++
		return nil
	}

	rec, err := poem.Load(metadataFile)
	if err != nil {
		if errors.Is(err, poem.ErrNoPrompt) {
			logging.Warn("No image prompt found in metadata: %s", metadataFile)
		} else {
			logging.Error("Error processing %s: %v", metadataFile, err)
		}
		totals.Failed++
		totals.Processed++
		return nil
	}

	logging.Info("Generating image for: %s", rec.Name)
	logging.Debug("Prompt: %s", rec.Prompt)

	data, err := d.Gen.Generate(ctx, rec.Prompt)
	if err != nil {
		return err
	}
	if data == nil {
		logging.Error("Failed to generate image for: %s", rec.Name)
		totals.Failed++
		totals.Processed++
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		logging.Error("Error saving image %s: %v", outputPath, err)
		totals.Failed++
		totals.Processed++
		return nil
	}

	if err := d.Store.MarkProcessed(rec.Prompt, outputPath); err != nil {
		logging.Error("Error recording checksum for %s: %v", outputPath, err)
		totals.Failed++
		totals.Processed++
		return nil
	}

	logging.Info("Saved image to: %s", outputPath)
	totals.Processed++
	return nil
}

// throttle sleeps a uniformly random duration within the configured window.
func (d *Driver) throttle(ctx context.Context) error {
	min, max := d.ThrottleMin, d.ThrottleMax
	if min == 0 && max == 0 {
		min, max = DefaultThrottleMin, DefaultThrottleMax
	}

	pause := min
	if max > min {
		pause = min + time.Duration(d.float64()*float64(max-min))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pause):
		return nil
	}
}

func (d *Driver) float64() float64 {
	if d.Rand != nil {
		return d.Rand.Float64()
	}
	return rand.Float64()
}
