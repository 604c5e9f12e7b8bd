// Package imagegen wraps the remote generative-image service with bounded
// retry, error classification, and image normalization.
//
// The remote response is decoded once at the transport boundary into a
// tagged Part variant, so the retry loop and the batch driver never probe
// optional SDK fields.
package imagegen

import "context"

// Part is one decoded response part: exactly one of Text or InlineData is
// set.
type Part struct {
	Text       string
	InlineData *InlineData
}

// InlineData carries raw image bytes plus the MIME hint the service reported.
type InlineData struct {
	Data     []byte
	MIMEType string
}

// Response holds the decoded parts of one remote call. A response with zero
// image parts is a valid "no image produced" outcome.
type Response struct {
	Parts []Part
}

// Client submits one prompt to the remote service, requesting both text and
// image response parts. Implementations translate transport errors with
// structured status codes into *ratelimit.HTTPError.
type Client interface {
	GenerateContent(ctx context.Context, model, prompt string) (*Response, error)
}
