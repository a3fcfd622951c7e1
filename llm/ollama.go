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

// OllamaAdapter implements Adapter for a local Ollama instance
type OllamaAdapter struct {
	client  *http.Client
	config  AdapterConfig
	baseURL string
}

// ollamaMessage represents a message in Ollama API format
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatRequest represents a chat request to Ollama
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// ollamaChatResponse represents a chat response from Ollama
type ollamaChatResponse struct {
	Model     string        `json:"model"`
	CreatedAt time.Time     `json:"created_at"`
	Message   ollamaMessage `json:"message"`
	Done      bool          `json:"done"`
}

// NewOllamaAdapter creates a new Ollama adapter
func NewOllamaAdapter(config AdapterConfig) *OllamaAdapter {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	return &OllamaAdapter{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config:  config,
		baseURL: baseURL,
	}
}

// Ask implements Adapter.Ask
func (o *OllamaAdapter) Ask(ctx context.Context, prompt, systemPrompt string) (string, error) {
	return askViaChat(ctx, o, prompt, systemPrompt)
}

// Chat implements Adapter.Chat
func (o *OllamaAdapter) Chat(ctx context.Context, messages []Message) (*Message, error) {
	// Convert our messages to Ollama format
	ollamaMessages := make([]ollamaMessage, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollamaMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	request := ollamaChatRequest{
		Model:    o.config.Model,
		Messages: ollamaMessages,
		Stream:   false,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/chat", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Ollama API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Message{
		Role:      response.Message.Role,
		Content:   response.Message.Content,
		Timestamp: time.Now(),
	}, nil
}

// ModelName implements Adapter.ModelName
func (o *OllamaAdapter) ModelName() string {
	return o.config.Model
}

// IsAvailable implements Adapter.IsAvailable
func (o *OllamaAdapter) IsAvailable() bool {
	if o.config.Model == "" {
		return false
	}

	// Test connection to Ollama
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
