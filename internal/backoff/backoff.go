// Package backoff computes retry delays with capped exponential growth and
// jitter.
package backoff

import (
	"math/rand"
	"time"
)

// Default delay bounds, matching the generation client's retry behavior.
const (
	DefaultInitialDelay = 2 * time.Second
	DefaultMaxDelay     = 60 * time.Second
)

// Jitter bounds: each delay is scaled by a uniform factor in [0.8, 1.2]
// to avoid synchronized retry storms.
const (
	jitterMin = 0.8
	jitterMax = 1.2
)

// Policy computes the delay before a retry attempt. The zero value is not
// usable; construct with New.
type Policy struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Rand is the randomness source for jitter. When nil, the shared
	// math/rand source is used. Tests inject a seeded source.
	Rand *rand.Rand
}

// New returns a Policy with the given bounds. Non-positive bounds fall back
// to the defaults.
func New(initial, max time.Duration) *Policy {
	if initial <= 0 {
		initial = DefaultInitialDelay
	}
	if max <= 0 {
		max = DefaultMaxDelay
	}
	return &Policy{InitialDelay: initial, MaxDelay: max}
}

// Base returns the un-jittered delay for the given attempt:
// min(MaxDelay, InitialDelay * 2^attempt).
func (p *Policy) Base(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 0; i < attempt && d < p.MaxDelay; i++ {
		d *= 2
	}
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Delay returns the jittered delay for the given attempt. The result lies
// within [0.8, 1.2] times Base(attempt).
func (p *Policy) Delay(attempt int) time.Duration {
	jitter := jitterMin + (jitterMax-jitterMin)*p.float64()
	return time.Duration(float64(p.Base(attempt)) * jitter)
}

func (p *Policy) float64() float64 {
	if p.Rand != nil {
		return p.Rand.Float64()
	}
	return rand.Float64()
}
