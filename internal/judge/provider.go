// Package judge is the optional LLM-backed grading collaborator. It can
// override the local grader's verdict but is never required: any
// failure, timeout or malformed response is treated as "no opinion" and
// the turn falls back to deterministic grading.
package judge

import (
	"context"
	"encoding/json"
)

// Provider is a single-turn structured-output LLM client.
type Provider interface {
	// Ask sends one prompt and returns the model's JSON response. When
	// the request carries a schema, the content conforms to it.
	Ask(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single grading prompt.
type Request struct {
	// System sets the model's role and output constraints.
	System string

	// Prompt is the user-turn content.
	Prompt string

	// Schema, when set, selects the provider's structured output
	// mechanism and is enforced on the response.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in 0.0-1.0; zero means deterministic.
	Temperature float64
}

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	Content json.RawMessage
	Model   string
}
