package llm

import (
	"context"
	"fmt"
	"strings"
)

// Enhancer rewrites rough work log descriptions into client-facing
// invoice descriptions. Enhancement is best-effort: any failure falls
// back to the original description so invoice creation never blocks
// on the LLM.
type Enhancer struct {
	client *Client
	model  string
}

// NewEnhancer creates an enhancer backed by the given client.
func NewEnhancer(client *Client, model string) *Enhancer {
	return &Enhancer{client: client, model: model}
}

// Enhance returns a professional rewrite of description for the given
// task title. On any error or empty model output it returns the
// original description unchanged.
func (e *Enhancer) Enhance(ctx context.Context, title, description string) string {
	if e.client == nil {
		return description
	}

	prompt := fmt.Sprintf(UserPromptEnhance, title, description)

	out, err := e.client.ChatText(ctx, e.model, SystemPromptEnhancer, prompt)
	if err != nil {
		return description
	}

	out = strings.TrimSpace(strings.Trim(strings.TrimSpace(out), `"`))
	if out == "" {
		return description
	}

	return out
}
