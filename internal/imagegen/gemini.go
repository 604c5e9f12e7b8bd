package imagegen

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/vinaywadhwa9/anjuli/internal/ratelimit"
)

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient constructs a Gemini-backed client with the given API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// GenerateContent submits the prompt requesting TEXT and IMAGE modalities and
// decodes the first candidate's parts.
func (g *GeminiClient) GenerateContent(ctx context.Context, model, prompt string) (*Response, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ratelimit.HTTPError{Code: apiErr.Code, Err: err}
		}
		return nil, err
	}

	resp := &Response{}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return resp, nil
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			resp.Parts = append(resp.Parts, Part{Text: part.Text})
		}
		if part.InlineData != nil {
			resp.Parts = append(resp.Parts, Part{InlineData: &InlineData{
				Data:     part.InlineData.Data,
				MIMEType: part.InlineData.MIMEType,
			}})
		}
	}
	return resp, nil
}
