package llm

import (
	"context"
	"fmt"
	"time"
)

// Message represents a chat message
type Message struct {
	Role      string    `json:"role"`      // "system", "user", "assistant"
	Content   string    `json:"content"`   // The message content
	Timestamp time.Time `json:"timestamp"` // When the message was created
}

// Adapter defines the interface for LLM providers
type Adapter interface {
	// Ask sends a single prompt (with an optional system prompt) and returns the answer text
	Ask(ctx context.Context, prompt, systemPrompt string) (string, error)

	// Chat sends a message history and returns the complete response
	Chat(ctx context.Context, messages []Message) (*Message, error)

	// ModelName returns the current model name
	ModelName() string

	// IsAvailable checks if the adapter is properly configured and available
	IsAvailable() bool
}

// AdapterConfig contains common configuration for LLM adapters
type AdapterConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	// Timeout bounds a single request. Zero means no timeout: a hung call
	// blocks the current command, which is the documented behavior.
	Timeout time.Duration
}

// ProviderError wraps a failure reported by an LLM provider
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// askViaChat implements Ask on top of Chat for adapters without a dedicated
// single-prompt endpoint.
func askViaChat(ctx context.Context, a Adapter, prompt, systemPrompt string) (string, error) {
	messages := make([]Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: systemPrompt, Timestamp: time.Now()})
	}
	messages = append(messages, Message{Role: "user", Content: prompt, Timestamp: time.Now()})

	response, err := a.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}
