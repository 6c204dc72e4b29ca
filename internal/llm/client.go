package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client turns a free-text model response into schema-valid JSON, or
// fails after a bounded number of attempts. Each attempt is a fresh
// provider call followed by repair, parse and (for structured calls)
// schema validation. Content-level failures retry immediately with no
// backoff; the underlying provider chain already backs off on transport
// errors, so the two budgets do not compound.
type Client struct {
	provider    Provider
	maxAttempts int
	maxTokens   int
}

// NewClient creates a Client over the given provider.
// maxAttempts <= 0 falls back to 3, maxTokens <= 0 to 8192.
func NewClient(provider Provider, maxAttempts, maxTokens int) *Client {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &Client{provider: provider, maxAttempts: maxAttempts, maxTokens: maxTokens}
}

// Provider exposes the underlying provider chain.
func (c *Client) Provider() Provider { return c.provider }

// GenerateStructured issues one model call requesting JSON that conforms
// to schema and returns the cleaned, validated JSON bytes. Exhausting
// the attempt budget returns a *GenerationError carrying the last
// underlying error.
func (c *Client) GenerateStructured(ctx context.Context, system, user string, schema *Schema, temperature float64) (json.RawMessage, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required for structured generation")
	}
	return c.generate(ctx, system, user, schema, temperature, nil)
}

// GenerateStructuredAs is GenerateStructured plus a decode step inside
// the retry loop: decode unmarshals the validated JSON into the caller's
// typed value and may enforce invariants the JSON Schema cannot express
// (e.g. an MCQ answer matching one of its options). A decode failure
// counts as a failed attempt and triggers a fresh call.
func (c *Client) GenerateStructuredAs(ctx context.Context, system, user string, schema *Schema, temperature float64, decode func(json.RawMessage) error) error {
	if schema == nil {
		return fmt.Errorf("schema is required for structured generation")
	}
	_, err := c.generate(ctx, system, user, schema, temperature, decode)
	return err
}

// GenerateJSON issues one model call requesting JSON output of a loosely
// defined shape and returns the parsed value. Used where the expected
// shape is too fluid for a schema, e.g. a bare array of strings.
func (c *Client) GenerateJSON(ctx context.Context, system, user string, temperature float64) (any, error) {
	var parsed any
	_, err := c.generate(ctx, system, user, nil, temperature, func(raw json.RawMessage) error {
		return json.Unmarshal(raw, &parsed)
	})
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func (c *Client) generate(ctx context.Context, system, user string, schema *Schema, temperature float64, decode func(json.RawMessage) error) (json.RawMessage, error) {
	req := Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.provider.Generate(ctx, req)
		if err != nil {
			// The provider chain has already retried transport errors;
			// spending the content budget on them gains nothing.
			return nil, &GenerationError{Purpose: PurposeFrom(ctx), Attempts: attempt + 1, LastErr: err}
		}

		cleaned := json.RawMessage(Repair(string(resp.Content)))

		if schema != nil {
			if err := validateResponse(schema, cleaned); err != nil {
				lastErr = err
				continue
			}
		} else if !json.Valid(cleaned) {
			lastErr = &ErrInvalidResponse{Content: cleaned, Err: fmt.Errorf("response is not valid JSON")}
			continue
		}

		if decode != nil {
			if err := decode(cleaned); err != nil {
				lastErr = &ErrInvalidResponse{Content: cleaned, Err: err}
				continue
			}
		}

		return cleaned, nil
	}

	return nil, &GenerationError{Purpose: PurposeFrom(ctx), Attempts: c.maxAttempts, LastErr: lastErr}
}
