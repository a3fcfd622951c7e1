package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token usage persistence under <workspace>/.mend/usage.json

// maxUsageRecords bounds the usage history; the oldest record is evicted first.
const maxUsageRecords = 100

// UsageRecord is one tracked AI invocation
type UsageRecord struct {
	ID        string    `json:"id"`
	Tokens    int       `json:"tokens"`
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// TokenUsage holds the running total and the recent history
type TokenUsage struct {
	TotalTokens int64         `json:"total_tokens"`
	Records     []UsageRecord `json:"records"`
}

// UsageStore persists token usage accounting for one workspace.
// Loaded at command start, persisted at command end; callers hold no
// references across commands.
type UsageStore struct {
	workspacePath string
	mu            sync.Mutex
}

// NewUsageStore creates a usage store for the given workspace
func NewUsageStore(workspacePath string) *UsageStore {
	return &UsageStore{workspacePath: workspacePath}
}

func (s *UsageStore) usagePath() string {
	return filepath.Join(s.workspacePath, ".mend", "usage.json")
}

func (s *UsageStore) load() TokenUsage {
	var usage TokenUsage
	data, err := os.ReadFile(s.usagePath())
	if err != nil {
		return usage
	}
	if err := json.Unmarshal(data, &usage); err != nil {
		// If corrupt, start fresh
		return TokenUsage{}
	}
	return usage
}

func (s *UsageStore) save(usage TokenUsage) error {
	dir := filepath.Dir(s.usagePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.usagePath(), data, 0644)
}

// TrackTokenUsage appends a usage record and updates the running total.
// The history is capped at maxUsageRecords entries.
func (s *UsageStore) TrackTokenUsage(tokens int, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tokens < 0 {
		return fmt.Errorf("token count must be non-negative, got %d", tokens)
	}

	usage := s.load()
	usage.TotalTokens += int64(tokens)
	usage.Records = append(usage.Records, UsageRecord{
		ID:        uuid.NewString(),
		Tokens:    tokens,
		Command:   command,
		Timestamp: time.Now(),
	})

	if len(usage.Records) > maxUsageRecords {
		usage.Records = usage.Records[len(usage.Records)-maxUsageRecords:]
	}

	return s.save(usage)
}

// GetUsage returns the current usage totals and history
func (s *UsageStore) GetUsage() TokenUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// ResetUsage clears the usage history and totals
func (s *UsageStore) ResetUsage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.usagePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
