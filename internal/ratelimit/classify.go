// Package ratelimit classifies remote generation errors into retryable and
// non-retryable kinds.
//
// Classification prefers structured HTTP status codes when the transport
// provides them; errors surfaced as plain text fall back to case-insensitive
// substring matching against known rate-limit and server-error phrases.
package ratelimit

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the retry classification of a remote error.
type Kind int

const (
	// KindOther covers every error that must not be retried.
	KindOther Kind = iota

	// KindRateLimited marks quota and rate-limit rejections.
	KindRateLimited

	// KindServerError marks transient server-side failures.
	KindServerError
)

// String returns a short name for logging.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limit"
	case KindServerError:
		return "server error"
	default:
		return "error"
	}
}

// Retryable reports whether errors of this kind should consume a retry
// attempt rather than fail immediately.
func (k Kind) Retryable() bool {
	return k == KindRateLimited || k == KindServerError
}

// HTTPError carries a structured status code from the transport, wrapping
// the underlying error for message access.
type HTTPError struct {
	Code int
	Err  error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("remote call failed with status %d: %v", e.Code, e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Phrases matched case-insensitively against plain-text error messages.
var (
	rateLimitPhrases = []string{
		"rate limit",
		"quota",
		"429",
		"too many requests",
		"resource exhausted",
	}

	serverErrorPhrases = []string{
		"internal server error",
		"503",
	}
)

// Classify determines the retry kind of a remote error. A structured
// *HTTPError is classified by status code first; anything else by message.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case 429:
			return KindRateLimited
		case 500, 503:
			return KindServerError
		}
		// Unrecognized status: fall through to message matching.
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range rateLimitPhrases {
		if strings.Contains(msg, phrase) {
			return KindRateLimited
		}
	}
	for _, phrase := range serverErrorPhrases {
		if strings.Contains(msg, phrase) {
			return KindServerError
		}
	}
	return KindOther
}
