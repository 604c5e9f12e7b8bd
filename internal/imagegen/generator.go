package imagegen

import (
	"context"
	"time"

	"github.com/vinaywadhwa9/anjuli/internal/backoff"
	"github.com/vinaywadhwa9/anjuli/internal/logging"
	"github.com/vinaywadhwa9/anjuli/internal/ratelimit"
)

// Default generation settings, applied by NewGenerator when unset.
const (
	DefaultModel      = "gemini-2.0-flash-exp-image-generation"
	DefaultMaxRetries = 5
	DefaultBaseDelay  = 1 * time.Second
)

// Settings configures one Generator.
type Settings struct {
	// Model is the remote image-generation model identifier.
	Model string

	// MaxRetries bounds the attempts consumed by retryable failures.
	MaxRetries int

	// BaseDelay is the fixed throttle slept before the first attempt.
	BaseDelay time.Duration

	// Backoff computes the delay before each retry attempt.
	Backoff *backoff.Policy
}

// Generator issues prompt-to-image calls with bounded retry. All remote
// failure paths collapse to a nil result; the only error Generate returns is
// context cancellation.
type Generator struct {
	client   Client
	settings Settings
}

// NewGenerator wraps client with retry behavior, filling unset settings with
// defaults.
func NewGenerator(client Client, s Settings) *Generator {
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.MaxRetries == 0 {
		s.MaxRetries = DefaultMaxRetries
	}
	if s.BaseDelay == 0 {
		s.BaseDelay = DefaultBaseDelay
	}
	if s.Backoff == nil {
		s.Backoff = backoff.New(0, 0)
	}
	return &Generator{client: client, settings: s}
}

// Generate submits the prompt and returns normalized image bytes, or nil
// when no image could be produced. Rate-limit and transient-server errors
// are retried up to MaxRetries with exponential backoff; every other remote
// failure gives up immediately. Details are only logged.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	for attempt := 0; attempt < g.settings.MaxRetries; {
		if attempt > 0 {
			delay := g.settings.Backoff.Delay(attempt)
			logging.Info("Retrying in %.2fs (attempt %d/%d)", delay.Seconds(), attempt+1, g.settings.MaxRetries)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		} else {
			// Small throttle between regular calls.
			if err := sleep(ctx, g.settings.BaseDelay); err != nil {
				return nil, err
			}
		}

		resp, err := g.client.GenerateContent(ctx, g.settings.Model, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			kind := ratelimit.Classify(err)
			if !kind.Retryable() {
				logging.Error("Error generating image: %v", err)
				return nil, nil
			}
			attempt++
			logging.Warn("%s hit: %v", kind, err)
			if attempt >= g.settings.MaxRetries {
				logging.Error("Max retries exceeded for %s", kind)
				return nil, nil
			}
			continue
		}

		// First part carrying inline image data wins.
		for _, part := range resp.Parts {
			if part.InlineData == nil {
				continue
			}
			data, err := normalize(part.InlineData.Data)
			if err != nil {
				logging.Error("Error processing image data: %v", err)
				continue
			}
			return data, nil
		}

		logging.Warn("No valid image data found in response")
		return nil, nil
	}
	return nil, nil
}

// sleep blocks for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
