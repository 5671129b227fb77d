// Package llm wraps the external text-generation call and the two transforms
// built on it: deduplication and digest summarization.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trendscope/pkg/retry"
)

// Completer is one provider's raw text-completion call.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// Gateway is the single retry-wrapped entry point to the model. An empty
// response body counts as a failure and is retried; after the budget is
// spent the error propagates and callers apply their own fallback.
type Gateway struct {
	completer Completer
	policy    retry.Policy
}

func NewGateway(completer Completer, retries int) *Gateway {
	return &Gateway{
		completer: completer,
		policy: retry.Policy{
			Attempts:  retries,
			BaseDelay: 2 * time.Second,
		},
	}
}

func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	var out string

	err := g.policy.Do(ctx, func() error {
		text, err := g.completer.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return errors.New("empty completion response")
		}
		out = strings.TrimSpace(text)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("llm call failed after retries: %w", err)
	}

	return out, nil
}

func (g *Gateway) ModelName() string {
	return g.completer.ModelName()
}
