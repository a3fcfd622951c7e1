package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const anthropicVersion = "2023-06-01"

// AnthropicAdapter implements Adapter for the Anthropic API
type AnthropicAdapter struct {
	client  *http.Client
	config  AdapterConfig
	baseURL string
}

// anthropicMessage represents a message in Anthropic API format
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicRequest represents a request to the Anthropic messages API
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

// anthropicResponse represents a response from the Anthropic messages API
type anthropicResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewAnthropicAdapter creates a new Anthropic adapter
func NewAnthropicAdapter(config AdapterConfig) *AnthropicAdapter {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	return &AnthropicAdapter{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config:  config,
		baseURL: baseURL,
	}
}

// Ask implements Adapter.Ask
func (a *AnthropicAdapter) Ask(ctx context.Context, prompt, systemPrompt string) (string, error) {
	response, err := a.send(ctx, systemPrompt, []anthropicMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// Chat implements Adapter.Chat
func (a *AnthropicAdapter) Chat(ctx context.Context, messages []Message) (*Message, error) {
	// Anthropic takes the system prompt as a top-level field, not a message
	var system string
	anthropicMessages := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "system" {
			system = msg.Content
			continue
		}
		anthropicMessages = append(anthropicMessages, anthropicMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return a.send(ctx, system, anthropicMessages)
}

func (a *AnthropicAdapter) send(ctx context.Context, system string, messages []anthropicMessage) (*Message, error) {
	maxTokens := a.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	request := anthropicRequest{
		Model:       a.config.Model,
		MaxTokens:   maxTokens,
		Temperature: a.config.Temperature,
		System:      system,
		Messages:    messages,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/v1/messages", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.config.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Anthropic API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var content string
	for _, block := range response.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	if content == "" {
		return nil, fmt.Errorf("no response from Anthropic")
	}

	return &Message{
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
	}, nil
}

// ModelName implements Adapter.ModelName
func (a *AnthropicAdapter) ModelName() string {
	return a.config.Model
}

// IsAvailable implements Adapter.IsAvailable
func (a *AnthropicAdapter) IsAvailable() bool {
	return a.config.APIKey != "" && a.config.Model != ""
}
