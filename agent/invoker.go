package agent

import (
	"context"

	"mend/llm"
)

// UsageTracker records estimated token consumption. Tracking is best-effort:
// its errors never fail a command.
type UsageTracker interface {
	TrackTokenUsage(tokens int, command string) error
}

// Invoker sends prompts to the LLM adapter and accounts for token usage
type Invoker struct {
	adapter  llm.Adapter
	provider string
	usage    UsageTracker
}

// NewInvoker creates an invoker for the given adapter
func NewInvoker(adapter llm.Adapter, provider string, usage UsageTracker) *Invoker {
	return &Invoker{
		adapter:  adapter,
		provider: provider,
		usage:    usage,
	}
}

// Invoke sends the prompt and returns the raw text answer. Provider failures
// are wrapped in a ProviderError and propagated without retry. On success the
// token cost is estimated and forwarded to the usage tracker; tracker errors
// are swallowed.
func (inv *Invoker) Invoke(ctx context.Context, prompt, systemPrompt, commandLabel string) (string, error) {
	response, err := inv.adapter.Ask(ctx, prompt, systemPrompt)
	if err != nil {
		return "", &llm.ProviderError{Provider: inv.provider, Err: err}
	}

	if inv.usage != nil {
		tokens := EstimateTokens(prompt, response)
		// Best-effort: usage tracking must never fail the command
		_ = inv.usage.TrackTokenUsage(tokens, commandLabel)
	}

	return response, nil
}

// EstimateTokens approximates token cost at four characters per token,
// rounded up. A coarse billing estimate, not the provider's tokenizer.
func EstimateTokens(prompt, response string) int {
	chars := len(prompt) + len(response)
	return (chars + 3) / 4
}
